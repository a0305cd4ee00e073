package platform

import (
	"os"
	"strings"
)

// Filename constraints
const (
	MaxFilenameLength     = 200
	DownloadExtension     = ".mp4"
	DefaultDirPermissions = 0755
)

// Characters that are illegal in filenames on at least one supported OS.
const illegalFilenameChars = `<>:"/\|?*`

// SanitizeFilename strips characters illegal in filenames and caps the result
// at MaxFilenameLength runes. The extension is not appended here.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(illegalFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := []rune(b.String())
	if len(cleaned) > MaxFilenameLength {
		cleaned = cleaned[:MaxFilenameLength]
	}
	return strings.TrimSpace(string(cleaned))
}

// DownloadFilename derives the suggested attachment filename for a video title.
// The extension is always ".mp4" even when the negotiated container differs;
// downloads have always been exposed that way.
func DownloadFilename(title string) string {
	name := SanitizeFilename(title)
	if name == "" {
		name = "video"
	}
	return name + DownloadExtension
}

// CreateDirectoryIfNotExists creates the directory if it doesn't exist.
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

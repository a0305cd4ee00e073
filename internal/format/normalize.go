package format

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/ytget/yt-web-downloader/internal/model"
)

// Default values
const (
	DefaultContainer = "mp4"
	UnknownQuality   = "unknown"
	UnknownSize      = "Unknown"
)

const bytesPerMB = 1024 * 1024

var leadingDigits = regexp.MustCompile(`\d+`)

// Normalize filters the raw format list down to muxed renditions, deduplicates
// them by (quality, container) keeping the first record seen per key, sorts the
// result by descending numeric quality, and caps it at model.MaxFormats.
func Normalize(raw []model.RawFormatRecord) []model.NormalizedFormat {
	seen := make(map[string]struct{})
	formats := make([]model.NormalizedFormat, 0, len(raw))

	for i := range raw {
		f := &raw[i]
		if !f.IsMuxed() {
			continue
		}

		quality := qualityLabel(f)
		container := f.Ext
		if container == "" {
			container = DefaultContainer
		}

		key := quality + "-" + container
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		formats = append(formats, model.NormalizedFormat{
			FormatID:  f.FormatID,
			Quality:   quality,
			Container: container,
			Size:      sizeLabel(f.Size()),
		})
	}

	sort.SliceStable(formats, func(i, j int) bool {
		return qualityRank(formats[i].Quality) > qualityRank(formats[j].Quality)
	})

	if len(formats) > model.MaxFormats {
		formats = formats[:model.MaxFormats]
	}
	return formats
}

// qualityLabel prefers the resolution height, then the format note, then the
// literal "unknown".
func qualityLabel(f *model.RawFormatRecord) string {
	if f.Height > 0 {
		return fmt.Sprintf("%dp", f.Height)
	}
	if f.FormatNote != "" {
		return f.FormatNote
	}
	return UnknownQuality
}

// sizeLabel renders a byte count in mebibytes to two decimal places, matching
// the size strings the UI has always shown.
func sizeLabel(size int64) string {
	if size <= 0 {
		return UnknownSize
	}
	return fmt.Sprintf("%.2f MB", float64(size)/bytesPerMB)
}

// qualityRank extracts the leading integer of a quality label; labels without
// digits rank as 0 and therefore sort last.
func qualityRank(quality string) int {
	match := leadingDigits.FindString(quality)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-web-downloader/internal/config"
	"github.com/ytget/yt-web-downloader/internal/extract"
	"github.com/ytget/yt-web-downloader/internal/platform"
	"github.com/ytget/yt-web-downloader/internal/server"
	"github.com/ytget/yt-web-downloader/internal/stream"
)

// Minimal entry point: defaults only, no flags, no sweeper. Useful for local
// runs where ./downloads and a PATH yt-dlp are enough.
func main() {
	log := logrus.New()
	settings := config.Default()

	if err := platform.CreateDirectoryIfNotExists(settings.ScratchDir); err != nil {
		log.Fatal(err)
	}

	invoker := extract.NewInvoker(extract.NewExecRunner(settings.YTDLPPath))
	resolver := extract.NewResolver(invoker, log)
	orchestrator := stream.NewOrchestrator(resolver, stream.NewExecStarter(settings.YTDLPPath), log)

	handler := server.NewHandler(resolver, orchestrator, log)
	srv := server.New(settings.Addr(), settings.PublicDir, handler, log)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/ytget/yt-web-downloader/internal/config"
	"github.com/ytget/yt-web-downloader/internal/extract"
	"github.com/ytget/yt-web-downloader/internal/platform"
	"github.com/ytget/yt-web-downloader/internal/scratch"
	"github.com/ytget/yt-web-downloader/internal/server"
	"github.com/ytget/yt-web-downloader/internal/stream"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const appName = "yt-web-downloader"

func main() {
	app := &cli.App{
		Name:    appName,
		Usage:   "web service for inspecting and downloading video renditions via yt-dlp",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to YAML settings file",
				EnvVars: []string{"YTWD_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP listen port",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "scratch-dir",
				Usage:   "directory for ephemeral files",
				EnvVars: []string{"YTWD_SCRATCH_DIR"},
			},
			&cli.StringFlag{
				Name:    "ytdlp-path",
				Usage:   "yt-dlp executable",
				EnvVars: []string{"YTWD_YTDLP_PATH"},
			},
			&cli.StringFlag{
				Name:    "public-dir",
				Usage:   "static UI directory",
				EnvVars: []string{"YTWD_PUBLIC_DIR"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "debug logging",
				EnvVars: []string{"YTWD_VERBOSE"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	settings, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		settings.Port = c.Int("port")
	}
	if c.IsSet("scratch-dir") {
		settings.ScratchDir = c.String("scratch-dir")
	}
	if c.IsSet("ytdlp-path") {
		settings.YTDLPPath = c.String("ytdlp-path")
	}
	if c.IsSet("public-dir") {
		settings.PublicDir = c.String("public-dir")
	}
	if c.Bool("verbose") {
		settings.Verbose = true
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if settings.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{"version": version}).Info(appName + " starting")

	if err := platform.CreateDirectoryIfNotExists(settings.ScratchDir); err != nil {
		return err
	}

	// Orchestration layer
	invoker := extract.NewInvoker(extract.NewExecRunner(settings.YTDLPPath))
	resolver := extract.NewResolver(invoker, log)
	orchestrator := stream.NewOrchestrator(resolver, stream.NewExecStarter(settings.YTDLPPath), log)

	// Scratch sweep, off the request path
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := scratch.NewSweeper(afero.NewOsFs(), settings.ScratchDir, log)
	sweeper.SetMaxAge(settings.SweepMaxAge)
	sweeper.SetInterval(settings.SweepInterval)
	go sweeper.Run(ctx)

	// HTTP surface
	handler := server.NewHandler(resolver, orchestrator, log)
	srv := server.New(settings.Addr(), settings.PublicDir, handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown(context.Background())
	}
}

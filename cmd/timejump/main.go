package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"timejump/extractor"
	"timejump/internal/models"
	"timejump/server"
	"timejump/shared/config"
	"timejump/shared/monitoring"
	"timejump/shared/scheduler"
	"timejump/shared/storage"
	"timejump/thumbnail"
	"timejump/youtube"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "timejump",
		Usage:   "Extract chapter timestamps from YouTube comments",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(),
			extractCmd(),
			manualCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newEngine(ctx context.Context, cfg *config.Config, trace extractor.Trace) (*extractor.Engine, *youtube.Client, error) {
	client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, int64(cfg.YouTube.PageSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	opts := extractor.Options{
		MaxComments:    cfg.YouTube.MaxComments,
		PagePause:      time.Duration(cfg.YouTube.PagePauseMS) * time.Millisecond,
		APIDedupGap:    cfg.Extractor.APIDedupGap,
		ManualDedupGap: cfg.Extractor.ManualDedupGap,
	}
	return extractor.New(client, client, opts, trace), client, nil
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server with scheduled cache pruning",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine, client, err := newEngine(ctx, cfg, extractor.LogTrace{})
			if err != nil {
				return err
			}

			store, err := storage.OpenVideoStore(cfg.Server.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			generator, err := thumbnail.NewGenerator(cfg.Server.CacheDir, cfg.Server.TempDir)
			if err != nil {
				return err
			}

			sched := scheduler.New()
			maxAge := time.Duration(cfg.Prune.MaxAgeHours) * time.Hour
			if err := sched.Add(ctx, cfg.Prune.Schedule, thumbnail.NewPruneJob(generator, maxAge)); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			srv := server.New(engine, client, store, generator, monitoring.NewMonitor(), cfg.Server.Port)
			return srv.Run(ctx)
		},
	}
}

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract timestamps for a video and print them",
		ArgsUsage: "<videoID>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log every accepted and rejected candidate"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one video ID argument")
			}
			videoID := c.Args().First()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var trace extractor.Trace = extractor.NopTrace{}
			if c.Bool("verbose") {
				trace = extractor.LogTrace{}
			} else {
				log.SetOutput(io.Discard)
			}

			engine, _, err := newEngine(ctx, cfg, trace)
			if err != nil {
				return err
			}

			entries, err := engine.Extract(ctx, videoID)
			if err != nil {
				return err
			}

			printEntries(entries)
			return nil
		},
	}
}

func manualCmd() *cli.Command {
	return &cli.Command{
		Name:  "manual",
		Usage: "Parse timestamps from text piped via stdin",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "duration", Aliases: []string{"d"}, Usage: "Video duration in seconds, used as an upper bound"},
		},
		Action: func(c *cli.Context) error {
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}

			engine := extractor.New(nil, nil, extractor.Options{}, extractor.NopTrace{})
			printEntries(engine.ParseManual(string(text), c.Int("duration")))
			return nil
		},
	}
}

func printEntries(entries []models.TimestampEntry) {
	if len(entries) == 0 {
		fmt.Println("No timestamps found.")
		return
	}
	for _, entry := range entries {
		fmt.Printf("%-8s  %s\n", entry.Timestamp, entry.Caption)
	}
}

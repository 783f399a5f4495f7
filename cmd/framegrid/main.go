// Package main provides the CLI entry point for framegrid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/framegrid/pkg/adapters/logger"
	"github.com/user/framegrid/pkg/adapters/osfilesystem"
	"github.com/user/framegrid/pkg/config"
	"github.com/user/framegrid/pkg/framegrid"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
	"github.com/user/framegrid/pkg/server"
	"github.com/user/framegrid/pkg/summarizer"
)

var version = "dev"

func main() {
	// A missing .env is fine; a broken one is reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "framegrid",
		Usage:   l10n.T("Sample video frames into print sheets and animate sheets"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), EnvVars: []string{"FRAMEGRID_CONFIG"}, Category: l10n.T("Configuration")},
			&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to the ffmpeg executable"), EnvVars: []string{"FRAMEGRID_FFMPEG_PATH", "FFMPEG_PATH"}, Category: l10n.T("Tools")},
			&cli.StringFlag{Name: "ffprobe-path", Usage: l10n.T("Path to the ffprobe executable"), EnvVars: []string{"FRAMEGRID_FFPROBE_PATH"}, Category: l10n.T("Tools")},
			&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable (falls back to CHROME_PATH env, then system default)"), EnvVars: []string{"FRAMEGRID_CHROME_PATH"}, Category: l10n.T("Tools")},
			&cli.BoolFlag{Name: "install-chrome", Usage: l10n.T("Download Chromium when no browser is found"), EnvVars: []string{"FRAMEGRID_INSTALL_CHROME"}, Category: l10n.T("Tools")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), EnvVars: []string{"FRAMEGRID_DEBUG"}, Category: l10n.T("Debug")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output"), EnvVars: []string{"FRAMEGRID_DEBUG_DIR"}, Category: l10n.T("Debug")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), EnvVars: []string{"FRAMEGRID_LOG_LEVEL"}, Category: l10n.T("Logging")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
		},
		Commands: []*cli.Command{
			sampleCommand(),
			splitCommand(),
			serveCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("framegrid version %s", version))
					return nil
				},
			},
		},
	}
}

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     l10n.T("Print nine evenly spaced frames of a video on one sheet"),
		ArgsUsage: "VIDEO",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output PDF file path (required)"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "html", Usage: l10n.T("Also save the print page HTML"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "preview", Usage: l10n.T("Also save a PNG contact sheet"), Category: l10n.T("Output")},
			&cli.IntFlag{Name: "preview-width", Usage: l10n.T("Preview cell width in pixels (0 = source size)"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown run summary"), Category: l10n.T("Output")},
			&cli.DurationFlag{Name: "settle-delay", Usage: l10n.T("Pause between layout and printing"), Category: l10n.T("Sampling")},
			&cli.DurationFlag{Name: "capture-timeout", Usage: l10n.T("Time limit for each frame seek (0 = none)"), Category: l10n.T("Sampling")},
		},
		Action: runSample,
	}
}

func splitCommand() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     l10n.T("Turn a 3x3 sheet image into a looping GIF"),
		ArgsUsage: "SHEET",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output GIF file path (required)"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown run summary"), Category: l10n.T("Output")},
			&cli.IntFlag{Name: "delay", Usage: l10n.T("Frame delay in milliseconds (default: 200)"), Category: l10n.T("Animation")},
			&cli.IntFlag{Name: "workers", Usage: l10n.T("Parallel palette workers (default: 2)"), Category: l10n.T("Animation")},
			&cli.IntFlag{Name: "quality", Usage: l10n.T("Palette sampling interval, 1 is best (default: 10)"), Category: l10n.T("Animation")},
			&cli.BoolFlag{Name: "no-dither", Usage: l10n.T("Disable dithering"), Category: l10n.T("Animation")},
		},
		Action: runSplit,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: l10n.T("Serve the upload page and job API over HTTP"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: l10n.T("Listen address (default: :8080)"), EnvVars: []string{"FRAMEGRID_ADDR"}},
			&cli.IntFlag{Name: "max-jobs", Usage: l10n.T("Concurrent jobs (default: 2)"), EnvVars: []string{"FRAMEGRID_MAX_JOBS"}},
			&cli.StringSliceFlag{Name: "allow-origin", Usage: l10n.T("CORS allowed origin, repeatable"), EnvVars: []string{"FRAMEGRID_ALLOWED_ORIGINS"}},
			&cli.StringFlag{Name: "upload-dir", Usage: l10n.T("Directory for temporary uploads"), EnvVars: []string{"FRAMEGRID_UPLOAD_DIR"}},
		},
		Action: runServe,
	}
}

// loadConfig reads --config over the defaults and applies global flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("ffprobe-path") {
		cfg.FFprobePath = c.String("ffprobe-path")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.IsSet("install-chrome") {
		cfg.AutoInstallChrome = c.Bool("install-chrome")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	return cfg, nil
}

func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

func newIndicator(c *cli.Context) *progress.Indicator {
	if c.Bool("quiet") {
		return progress.New()
	}
	return progress.New(progress.NewConsole())
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New(l10n.F("expected exactly one %s argument", name))
	}
	return c.Args().First(), nil
}

func runSample(c *cli.Context) error {
	input, err := requireArg(c, "VIDEO")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	builder := framegrid.FromConfig(cfg)
	if c.IsSet("settle-delay") {
		builder.WithSettleDelay(c.Duration("settle-delay"))
	}
	if c.IsSet("capture-timeout") {
		builder.WithCaptureTimeout(c.Duration("capture-timeout"))
	}
	if c.IsSet("preview-width") {
		fc := builder.Build()
		builder.WithPreview(c.Int("preview-width"), fc.PreviewGap, fc.PreviewLabels)
	}
	fc := builder.Build()

	log := newLogger(c)
	kit, err := framegrid.New(fc, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	runCfg := fc.SamplerConfig(input, c.String("output"))
	runCfg.HTMLPath = c.String("html")
	runCfg.PreviewPath = c.String("preview")

	start := time.Now()
	result, err := kit.Sampler.Run(ctx, runCfg, newIndicator(c))
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.FromSample(result).
			WithOutput(runCfg.OutputPath).
			WithElapsed(time.Since(start)).
			Build()
		if err := writeSummary(kit.FileSystem, path, summary); err != nil {
			return err
		}
		log.Info("Summary saved to %s", path)
	}
	return nil
}

func runSplit(c *cli.Context) error {
	input, err := requireArg(c, "SHEET")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	builder := framegrid.FromConfig(cfg)
	if c.IsSet("delay") {
		builder.WithDelayMs(c.Int("delay"))
	}
	if c.IsSet("workers") {
		builder.WithWorkers(c.Int("workers"))
	}
	if c.IsSet("quality") {
		builder.WithQuality(c.Int("quality"))
	}
	if c.Bool("no-dither") {
		builder.WithDither(false)
	}
	// The process exits right after the run; there is nothing to linger for.
	fc := builder.WithHideDelay(0).Build()

	log := newLogger(c)
	kit, err := framegrid.New(fc, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	runCfg := fc.SplitterConfig(input, c.String("output"))
	start := time.Now()
	result, err := kit.Splitter.Run(ctx, runCfg, newIndicator(c))
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.FromSplit(result, runCfg.Options).
			WithOutput(runCfg.OutputPath).
			WithElapsed(time.Since(start)).
			Build()
		if err := writeSummary(kit.FileSystem, path, summary); err != nil {
			return err
		}
		log.Info("Summary saved to %s", path)
	}
	return nil
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("max-jobs") {
		cfg.Server.MaxJobs = c.Int("max-jobs")
	}
	if c.IsSet("allow-origin") {
		cfg.Server.AllowedOrigins = c.StringSlice("allow-origin")
	}
	if c.IsSet("upload-dir") {
		cfg.Server.UploadDir = c.String("upload-dir")
	}

	log := newLogger(c)
	fc := framegrid.FromConfig(cfg).Build()
	fsys := &osfilesystem.FileSystem{TempRoot: cfg.Server.UploadDir}

	kit, err := framegrid.NewWith(fc, log, framegrid.Overrides{FileSystem: fsys})
	if err != nil {
		return err
	}
	if !kit.Opener.Available() {
		log.Warn("ffmpeg not found, video sampling is unavailable")
	}

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		Version:        version,
		MaxJobs:        cfg.Server.MaxJobs,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Sampler:        fc.SamplerConfig("", ""),
		Splitter:       fc.SplitterConfig("", ""),
	}, server.Deps{
		Sampler:    kit.Sampler,
		Splitter:   kit.Splitter,
		FileSystem: fsys,
		Logger:     log,
	})

	ctx, cancel := signalContext(log)
	defer cancel()
	return srv.ListenAndServe(ctx)
}

func writeSummary(fsys ports.FileSystem, path string, s *summarizer.Summary) error {
	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fsys).Write(path, s)
}

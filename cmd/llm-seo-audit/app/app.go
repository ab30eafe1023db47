// Package app wires the CLI surface: flags, configuration, logging and
// output selection around the audit library.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli"

	"code/audit"
	"code/config"
	"code/internal/genai"
	"code/internal/limiter"
	"code/report"
)

const (
	formatReport = "report"
	formatJSON   = "json"
)

// Run executes the CLI. If URL is missing, it prints help and returns nil.
func Run(args []string, stdout, stderr io.Writer, client *http.Client, clock limiter.Timer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app := cli.NewApp()
	app.Name = "llm-seo-audit"
	app.Usage = "audit a website's readability for AI assistants"
	app.UsageText = "llm-seo-audit [global options] <url>"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "depth",
			Usage: "crawl depth from the seed URL",
			Value: cfg.Depth,
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "write the result to a file instead of stdout",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "output format: report or json",
			Value: formatReport,
		},
		cli.BoolFlag{
			Name:  "ai-report",
			Usage: "include an AI-written analysis section",
		},
		cli.StringFlag{
			Name:  "ai-key",
			Usage: "API key for the AI report",
			Value: cfg.AIKey,
		},
		cli.DurationFlag{
			Name:  "delay",
			Usage: "minimum pause between fetches to one host",
			Value: cfg.Delay,
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
			Value: cfg.Timeout,
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent fetch workers",
			Value: cfg.Workers,
		},
		cli.IntFlag{
			Name:  "retries",
			Usage: "number of retries for failed requests",
			Value: cfg.Retries,
		},
		cli.StringFlag{
			Name:  "user-agent",
			Usage: "custom user agent",
			Value: cfg.UserAgent,
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, warn, error",
			Value: cfg.LogLevel,
		},
	}
	app.Action = func(c *cli.Context) error {
		rootURL := c.Args().First()
		if rootURL == "" {
			_ = cli.ShowAppHelp(c)

			return nil
		}

		logger := newLogger(stderr, c.String("log-level"))

		result, _, err := audit.Run(context.Background(), audit.Options{
			URL:        rootURL,
			Depth:      c.Int("depth"),
			MaxPages:   cfg.MaxPages,
			Delay:      c.Duration("delay"),
			Timeout:    c.Duration("timeout"),
			Retries:    c.Int("retries"),
			Workers:    c.Int("workers"),
			UserAgent:  c.String("user-agent"),
			HTTPClient: client,
			Clock:      clock,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		if c.Bool("ai-report") {
			result.AIReport = aiReport(c.String("ai-key"), cfg.AIModel, result, stderr, logger)
		}

		return writeResult(c.String("format"), c.String("output"), stdout, result)
	}

	return app.Run(args)
}

// aiReport generates the optional AI section. A missing key or a service
// failure is reported to stderr and the audit result stands without it.
func aiReport(apiKey, model string, result audit.SiteResult, stderr io.Writer, logger *slog.Logger) string {
	client, err := genai.New(apiKey, model)
	if err != nil {
		fmt.Fprintf(stderr, "AI report unavailable: %v\n", err)

		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	text, err := client.Report(ctx, result)
	if err != nil {
		logger.Warn("AI report failed", "err", err)
		fmt.Fprintf(stderr, "AI report unavailable: %v\n", err)

		return ""
	}

	return text
}

func writeResult(format, outputPath string, stdout io.Writer, result audit.SiteResult) error {
	out := stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		out = file
	}

	switch format {
	case formatJSON:
		return audit.EncodeJSON(out, result)
	case formatReport:
		_, err := io.WriteString(out, report.Render(result))

		return err
	default:
		return fmt.Errorf("unknown format %q (expected %s or %s)", format, formatReport, formatJSON)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   parseLevel(level),
		NoColor: true,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

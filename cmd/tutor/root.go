package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campus-ai/tutor/observability"
	_ "github.com/campus-ai/tutor/provider/gemini"
	"github.com/campus-ai/tutor/tutor"
)

var (
	configFile string
	localeTag  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the campus AI tutor from the terminal",
	Long: `An interactive terminal client for the campus AI tutor.

Prompts are answered by the configured assistant provider with live web
search; cited sources are listed under each answer.

Commands inside the chat:
  /locale <tag>   switch language (restarts the conversation)
  /quit           exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config JSON file")
	rootCmd.Flags().StringVarP(&localeTag, "locale", "l", "", "Startup locale tag (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func runChat() error {
	cfg := tutor.DefaultConfig()
	if configFile != "" {
		loaded, err := tutor.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if localeTag != "" {
		cfg.Locale.Default = localeTag
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if _, err := observability.InitLogger(cfg.LogDir, level); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	observer := observability.Observer(observability.NewSlogObserver(slog.Default()))
	if cfg.Telemetry {
		meter, cleanup, err := observability.InitTelemetry(ctx, cfg.LogDir)
		if err != nil {
			return err
		}
		defer cleanup()

		otelObs, err := observability.NewOTelObserver(meter)
		if err != nil {
			return err
		}
		observer = observability.NewMultiObserver(observer, otelObs)
	}

	r := newRenderer(os.Stdout)

	surface, err := tutor.New(&cfg,
		tutor.WithObserver(observer),
		tutor.WithUpdateFunc(r.render),
	)
	if err != nil {
		return err
	}

	if cfg.Locale.Watch {
		if err := surface.Locales().Watch(ctx); err != nil {
			slog.Warn("locale watcher unavailable", "error", err)
		}
	}

	surface.Open()
	defer surface.Close()
	r.closeLine(surface.Transcript())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case strings.HasPrefix(line, "/locale"):
			tag := strings.TrimSpace(strings.TrimPrefix(line, "/locale"))
			if tag == "" {
				fmt.Printf("locales: %s\n", strings.Join(surface.Locales().Tags(), ", "))
				continue
			}
			if err := surface.Locales().SetLocale(tag); err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				continue
			}
			r.closeLine(surface.Transcript())
		default:
			if err := surface.Submit(ctx, line); err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				continue
			}
			r.closeLine(surface.Transcript())
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"redmics/internal/config"
	"redmics/internal/locale"
	appLog "redmics/internal/log"
	"redmics/internal/query"
	"redmics/internal/render"
	"redmics/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	items      string
	once       bool
	debug      bool
}

func main() {
	appLog.Info("redmics starting", "version", "0.1.0-dev")

	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI overrides for config file values.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.items != "" {
		conf.ItemsFile = flags.items
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"hostname", conf.Hostname,
		"base_url", conf.BaseURL,
		"items_file", conf.ItemsFile,
		"issue_strategy", conf.Render.Issues,
		"version_strategy", conf.Render.Versions,
		"once", flags.once,
	)

	src := query.NewFileSource(conf.ItemsFile)

	if flags.once {
		if err := renderOnce(conf, src); err != nil {
			appLog.Error("render failed", err)
			os.Exit(1)
		}
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- web.StartServer(ctx, conf, src)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLog.Error("HTTP server failed", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	appLog.Info("redmics exiting")
}

// renderOnce renders the configured items file with the configured default
// strategies and writes the calendar document to stdout.
func renderOnce(conf *config.Config, src query.Source) error {
	settings := render.Settings{
		Issues:         render.IssueStrategy(conf.Render.Issues),
		Versions:       render.VersionStrategy(conf.Render.Versions),
		Summary:        render.SummaryStrategy(conf.Render.Summary),
		Description:    render.DescriptionStrategy(conf.Render.Description),
		Hostname:       conf.Hostname,
		BaseURL:        conf.BaseURL,
		PriorityLevels: conf.PriorityLevels,
	}

	renderer, err := render.New(settings, locale.Default())
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := query.Options{Status: query.StatusAll, Assignment: query.AssignmentAll}

	issues, err := src.Issues(ctx, opts)
	if err != nil {
		return err
	}
	versions, err := src.Versions(ctx, opts)
	if err != nil {
		return err
	}

	doc, err := renderer.ICS(issues, versions)
	if err != nil {
		return err
	}

	fmt.Print(doc)
	return nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/redmics/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.items, "items", "", "Items file path (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Render the items file to stdout and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/tweetwatch/app/api"
	"github.com/lysyi3m/tweetwatch/app/cfg"
	"github.com/lysyi3m/tweetwatch/app/monitor"
	"github.com/lysyi3m/tweetwatch/app/notify"
	"github.com/lysyi3m/tweetwatch/app/source"
	"github.com/lysyi3m/tweetwatch/app/state"
	"github.com/lysyi3m/tweetwatch/app/timeline"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting tweetwatch", "version", appCfg.Version, "source", appCfg.SourceMode, "channel", appCfg.Channel)

	watch, err := loadWatch(appCfg)
	if err != nil {
		slog.Error("Failed to load watch definition", "error", err)
		os.Exit(1)
	}
	slog.Info("Watching account", "account", watch.Account, "poll_interval", watch.Settings.PollInterval, "filters", len(watch.Filters))

	store, err := newStore(appCfg, watch.Account)
	if err != nil {
		slog.Error("Failed to initialize watermark storage", "error", err)
		os.Exit(1)
	}

	src, err := source.New()
	if err != nil {
		slog.Error("Failed to construct source", "source", appCfg.SourceMode, "error", err)
		os.Exit(1)
	}

	notifier, err := notify.New()
	if err != nil {
		slog.Error("Failed to construct notifier", "channel", appCfg.Channel, "error", err)
		os.Exit(1)
	}

	var newSource func() (source.Source, error)
	if !appCfg.Once {
		newSource = source.New
	}

	mon := monitor.New(watch, src, newSource, notifier, store)
	defer mon.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Once {
		// Single-shot mode: one cycle, exit code reflects the outcome.
		result, err := mon.RunCycle(ctx)
		if err != nil {
			os.Exit(1)
		}
		if result.Outcome == monitor.OutcomeMalformedID {
			os.Exit(1)
		}
		return
	}

	var statusServer *http.Server
	if appCfg.Port != "" {
		statusServer = api.NewServer(mon)
		go func() {
			slog.Info("Status server listening", "port", appCfg.Port)
			if err := statusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Status server error", "error", err)
			}
		}()
	}

	mon.Run(ctx)

	slog.Info("Shutting down")

	if statusServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Status server shutdown error", "error", err)
		}
	}
}

// loadWatch builds the watch definition from the watch file when
// configured, otherwise from flags/env alone.
func loadWatch(appCfg *cfg.Cfg) (*timeline.Watch, error) {
	if appCfg.WatchFile != "" {
		watch, err := timeline.LoadWatch(appCfg.WatchFile)
		if err != nil {
			return nil, err
		}
		return watch, nil
	}

	watch := &timeline.Watch{
		Account: appCfg.Account,
		Settings: timeline.WatchSettings{
			MaxItems:     appCfg.MaxItems,
			PollInterval: appCfg.PollInterval,
			Timeout:      appCfg.FetchTimeout,
		},
	}
	if watch.Account == "" {
		return nil, errAccountRequired
	}

	return watch, nil
}

var errAccountRequired = &configError{"an account is required: set --account/TWITTER_ACCOUNT or provide a watch file"}

type configError struct{ msg string }

func (e *configError) Error() string { return e.msg }

func newStore(appCfg *cfg.Cfg, account string) (state.Store, error) {
	switch appCfg.StateBackend {
	case "file":
		return state.NewFileStore(appCfg.StatePath), nil
	case "env":
		return state.NewEnvStore("LAST_TWEET_ID", "NEW_LAST_TWEET_ID"), nil
	case "sqlite":
		return state.NewSQLiteStore(appCfg.DBPath, account)
	default:
		return nil, &configError{"unknown state backend: " + appCfg.StateBackend + " (use 'file', 'env', or 'sqlite')"}
	}
}

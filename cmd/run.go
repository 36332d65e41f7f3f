package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rolwijzer/internal/app"
	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/coach"
	"github.com/abhisek/rolwijzer/internal/config"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/llm"
	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/selfupdate"
	"github.com/abhisek/rolwijzer/internal/store"
)

// runApp loads the catalogue, wires the export store and coach, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	l := ledger.New()

	// The store is optional: without it the session simply isn't exported.
	var eventRepo store.EventRepo
	if dbPath, err := resolveDBPath(cfg); err != nil {
		log.Warn("resolve database path", "error", err)
	} else if st, err := store.Open(dbPath); err != nil {
		fmt.Fprintln(os.Stderr, "Database unavailable, portfolio will not be exported:", err)
		log.Warn("open store", "path", dbPath, "error", err)
	} else {
		defer st.Close()
		eventRepo = st.EventRepo()
		if cfg.Store.Export {
			exp := app.NewExporter(st.CompletionRepo(), log)
			defer exp.Close()
			l.OnRecord(exp.Observe)
		}
	}

	log.Info("starting", "version", version, "roles", len(cat.RoleIDs()), "export", cfg.Store.Export)

	return app.Run(ctx, app.Options{
		Catalog:       cat,
		Ledger:        l,
		Coach:         buildCoach(ctx, cfg, eventRepo, log),
		Logger:        log,
		RevealDelay:   cfg.Quiz.RevealDelay(),
		CoachTimeout:  cfg.Coach.Timeout(),
		Version:       version,
		UpdateChecker: selfupdate.NewChecker(selfupdate.WithTimeout(5 * time.Second)),
	})
}

// buildCoach returns the reflection coach, or nil when it is disabled or no
// provider is configured. repo may be nil.
func buildCoach(ctx context.Context, cfg *config.Config, repo store.EventRepo, log *logging.Logger) *coach.Service {
	llmCfg, ok := coach.LLMConfig(cfg.Coach)
	if !ok {
		log.Info("coach disabled")
		return nil
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Coach not available:", err)
		log.Warn("coach provider", "provider", llmCfg.Provider, "error", err)
		return nil
	}

	cc := coach.DefaultConfig()
	if cfg.Coach.MaxTokens > 0 {
		cc.MaxTokens = cfg.Coach.MaxTokens
	}
	log.Info("coach enabled", "provider", llmCfg.Provider, "model", provider.ModelID())
	return coach.NewService(provider, cc)
}

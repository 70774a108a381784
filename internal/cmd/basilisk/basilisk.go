// Package basilisk parses console command flags and runs the interactive
// crisis terminal.
package basilisk

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/louisbranch/basilisk/internal/crisis"
	"github.com/louisbranch/basilisk/internal/platform/config"
	"github.com/louisbranch/basilisk/internal/session/service"
	"github.com/louisbranch/basilisk/internal/storage"
	"github.com/louisbranch/basilisk/internal/storage/sqlite"
)

// Config holds console command configuration.
type Config struct {
	StorePath  string `env:"BASILISK_STORE_PATH"  envDefault:"basilisk.db"`
	TuningPath string `env:"BASILISK_TUNING_PATH"`
	Seed       int64  `env:"BASILISK_SEED"`
	SessionID  string `env:"BASILISK_SESSION_ID"`
	MaxTurns   int    `env:"BASILISK_MAX_TURNS"`
	List       bool   `env:"-"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the session database")
	fs.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "path to a tuning overrides file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for a reproducible playthrough, 0 for random")
	fs.StringVar(&cfg.SessionID, "resume", cfg.SessionID, "session id to resume")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "override the session turn limit")
	fs.BoolVar(&cfg.List, "list", false, "list stored sessions and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds a session from the config and plays it on stdin/stdout.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store at %s: %w", cfg.StorePath, err)
	}
	defer func() { _ = store.Close() }()

	if cfg.List {
		return listSessions(ctx, store, os.Stdout)
	}

	tuning := crisis.DefaultTuning()
	if cfg.TuningPath != "" {
		tuning, err = crisis.LoadTuning(cfg.TuningPath)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
	}
	if cfg.MaxTurns > 0 {
		tuning.MaxTurns = cfg.MaxTurns
	}

	var director *service.Director
	if cfg.SessionID != "" {
		director, err = service.Load(ctx, store, cfg.SessionID, tuning, time.Now)
		if err != nil {
			return fmt.Errorf("resume session %s: %w", cfg.SessionID, err)
		}
	} else {
		director, err = service.New(ctx, service.Config{
			Seed:   cfg.Seed,
			Tuning: tuning,
			Store:  store,
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	}

	return NewConsole(director, os.Stdout).Play(ctx, os.Stdin)
}

// listSessions prints the stored sessions, most recently updated first, so a
// player can pick an id to pass to -resume.
func listSessions(ctx context.Context, store storage.Store, out io.Writer) error {
	records, err := store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "NO SESSIONS ON FILE.")
		return nil
	}

	fmt.Fprintf(out, "%-28s %-8s %-16s %s\n", "SESSION", "STATUS", "OUTCOME", "UPDATED")
	for _, record := range records {
		outcome := record.Outcome
		if outcome == "" {
			outcome = "-"
		}
		fmt.Fprintf(out, "%-28s %-8s %-16s %s\n",
			record.ID, record.Status, outcome, record.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

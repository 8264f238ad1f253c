package cmd

import (
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/config"
	"github.com/ramanasai/soldier/internal/db"
	"github.com/ramanasai/soldier/internal/logging"
	"github.com/ramanasai/soldier/internal/notify"
	"github.com/ramanasai/soldier/internal/output"
	"github.com/ramanasai/soldier/internal/stats"
	"github.com/ramanasai/soldier/internal/store"
	"github.com/ramanasai/soldier/internal/streak"
)

// app bundles everything a command needs. Build it with openApp and
// release it with close.
type app struct {
	cfg      config.Config
	log      hclog.Logger
	logFile  io.Closer
	dbh      *sql.DB
	kv       *db.KV
	sessions *db.Sessions
	sched    clock.Scheduler
}

func openApp(ctx context.Context) (*app, error) {
	log, logFile, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	dbh, err := db.Open(cfg.DBPath())
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}
	a := &app{
		cfg:      cfg,
		log:      log,
		logFile:  logFile,
		dbh:      dbh,
		kv:       db.NewKV(dbh),
		sessions: db.NewSessions(dbh),
		sched:    clock.System{},
	}

	moved, err := store.MigrateLegacy(ctx, a.kv)
	switch {
	case err != nil:
		log.Warn("legacy session counter migration failed", "error", err)
	case moved:
		log.Info("migrated legacy session counter", "from", store.KeyLegacySessions, "to", store.KeyTotalSessions)
	}
	return a, nil
}

func (a *app) close() {
	if err := a.dbh.Close(); err != nil {
		a.log.Warn("close database", "error", err)
	}
	_ = a.logFile.Close()
}

func (a *app) streak(ctx context.Context) *streak.Tracker {
	t := streak.New(a.kv, a.sched, a.cfg.Location(), a.log.Named("streak"))
	t.Load(ctx)
	return t
}

// stats loads the aggregator and hands its preferences to n when n is set.
func (a *app) stats(ctx context.Context, n *notify.Notifier) (*stats.Aggregator, stats.Summary) {
	agg := stats.New(a.kv, a.sessions, a.sched, a.cfg.Location(), a.log.Named("stats"))
	if n != nil {
		agg.OnPrefsChange(n.SetPrefs)
	}
	return agg, agg.Load(ctx)
}

func (a *app) breath(ctx context.Context, opts ...breath.Option) *breath.Session {
	opts = append([]breath.Option{
		breath.WithHistory(a.sessions),
		breath.WithLogger(a.log.Named("breath")),
	}, opts...)
	s := breath.New(a.sched, a.kv, opts...)
	s.Load(ctx)
	return s
}

func (a *app) notifier() *notify.Notifier {
	return notify.New(a.log.Named("notify"))
}

// renderer styles text only when stdout is a terminal.
func renderer(format string) (*output.Renderer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc := output.DefaultRenderConfig()
	rc.Format = f
	rc.Color = term.IsTerminal(int(os.Stdout.Fd()))
	return output.NewRenderer(rc), nil
}

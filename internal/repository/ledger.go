package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS parse_runs (
	id           TEXT PRIMARY KEY,
	source_path  TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	status       TEXT NOT NULL,
	report_type  TEXT NOT NULL DEFAULT '',
	identifier   TEXT NOT NULL DEFAULT '',
	output_path  TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	started_at   TEXT NOT NULL,
	finished_at  TEXT NOT NULL DEFAULT ''
)`

const indexDDL = `CREATE INDEX IF NOT EXISTS parse_runs_source ON parse_runs (source_path, content_hash)`

// Run is one row of the parse ledger.
type Run struct {
	ID          uuid.UUID
	SourcePath  string
	ContentHash string
	Status      constants.RunStatus
	ReportType  string
	Identifier  string
	OutputPath  string
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// RunResult is what a finished run records.
type RunResult struct {
	Status     constants.RunStatus
	ReportType string
	Identifier string
	OutputPath string
	Error      string
}

type LedgerRepository interface {
	Start(ctx context.Context, sourcePath, contentHash string) (uuid.UUID, error)
	Finish(ctx context.Context, runID uuid.UUID, res RunResult) error
	Unchanged(ctx context.Context, sourcePath, contentHash string) (bool, error)
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// Ledger records every file the pipeline touches in the parse_runs table.
type Ledger struct {
	db      *sql.DB
	pool    *pgxpool.Pool
	dialect string
	log     *slog.Logger
	now     func() time.Time
}

// NewLedger wraps an open database. The table is not created; call Migrate.
func NewLedger(db *sql.DB, dialect string, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{db: db, dialect: dialect, log: log, now: time.Now}
}

// OpenLedger opens the ledger database named by cfg.DSN: postgres:// URLs go
// through a pgx pool, anything else is a SQLite file path.
func OpenLedger(ctx context.Context, cfg common.LedgerConfig, log *slog.Logger) (*Ledger, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.DSN == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "ledger DSN is empty", common.ErrInvalidInput)
	}

	var l *Ledger
	if isPostgresDSN(cfg.DSN) {
		log.Info("connecting to ledger database", "dialect", DialectPostgres)
		pc, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, common.NewAppError("DATABASE_ERROR", "parse ledger DSN", errors.Join(common.ErrDatabase, err))
		}
		if cfg.MaxConns > 0 {
			pc.MaxConns = cfg.MaxConns
		}
		if cfg.MaxConnLifetime > 0 {
			pc.MaxConnLifetime = cfg.MaxConnLifetime
		}
		pc.ConnConfig.RuntimeParams["application_name"] = "cuervo-intel"

		dialCtx := ctx
		if cfg.DialTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
			defer cancel()
		}
		pool, err := pgxpool.NewWithConfig(dialCtx, pc)
		if err != nil {
			log.Error("failed to connect to ledger database", "error", err)
			return nil, common.NewAppError("DATABASE_ERROR", "connect ledger", errors.Join(common.ErrDatabase, err))
		}
		l = NewLedger(stdlib.OpenDBFromPool(pool), DialectPostgres, log)
		l.pool = pool
	} else {
		path := strings.TrimPrefix(cfg.DSN, "sqlite://")
		log.Info("opening ledger database", "dialect", DialectSQLite, "path", path)
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, common.NewAppError("DATABASE_ERROR", "open ledger", errors.Join(common.ErrDatabase, err))
		}
		// single writer
		db.SetMaxOpenConns(1)
		l = NewLedger(db, DialectSQLite, log)
	}

	if err := l.Migrate(ctx); err != nil {
		_ = l.Close()
		return nil, err
	}
	return l, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate creates the parse_runs table if needed.
func (l *Ledger) Migrate(ctx context.Context) error {
	for _, stmt := range []string{schemaDDL, indexDDL} {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			l.log.Error("ledger migrate failed", "error", err)
			return common.NewAppError("DATABASE_ERROR", "migrate ledger", errors.Join(common.ErrDatabase, err))
		}
	}
	return nil
}

// HealthCheck pings the database.
func (l *Ledger) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return l.db.PingContext(ctx)
}

func (l *Ledger) Close() error {
	l.log.Info("closing ledger database")
	err := l.db.Close()
	if l.pool != nil {
		l.pool.Close()
	}
	return err
}

func (l *Ledger) Start(ctx context.Context, sourcePath, contentHash string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := l.db.ExecContext(ctx,
		l.rebind(`INSERT INTO parse_runs (id, source_path, content_hash, status, started_at) VALUES (?, ?, ?, ?, ?)`),
		id.String(), sourcePath, contentHash, string(constants.RunStatusRunning), formatTime(l.now()))
	if err != nil {
		l.log.Error("parse_run start failed", "path", sourcePath, "error", err)
		return uuid.Nil, common.NewAppError("DATABASE_ERROR", "start run", errors.Join(common.ErrDatabase, err))
	}
	l.log.Debug("parse_run started", "run_id", id, "path", sourcePath)
	return id, nil
}

func (l *Ledger) Finish(ctx context.Context, runID uuid.UUID, res RunResult) error {
	_, err := l.db.ExecContext(ctx,
		l.rebind(`UPDATE parse_runs SET status = ?, report_type = ?, identifier = ?, output_path = ?, error = ?, finished_at = ? WHERE id = ?`),
		string(res.Status), res.ReportType, res.Identifier, res.OutputPath, res.Error, formatTime(l.now()), runID.String())
	if err != nil {
		l.log.Error("parse_run finish failed", "run_id", runID, "error", err)
		return common.NewAppError("DATABASE_ERROR", "finish run", errors.Join(common.ErrDatabase, err))
	}
	if res.Status == constants.RunStatusFailed {
		l.log.Warn("parse_run finished (FAILED)", "run_id", runID, "error", res.Error)
	} else {
		l.log.Debug("parse_run finished", "run_id", runID, "status", res.Status)
	}
	return nil
}

// Unchanged reports whether this exact content was already written from
// sourcePath.
func (l *Ledger) Unchanged(ctx context.Context, sourcePath, contentHash string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		l.rebind(`SELECT COUNT(*) FROM parse_runs WHERE source_path = ? AND content_hash = ? AND status = ?`),
		sourcePath, contentHash, string(constants.RunStatusWritten)).Scan(&n)
	if err != nil {
		return false, common.NewAppError("DATABASE_ERROR", "query runs", errors.Join(common.ErrDatabase, err))
	}
	return n > 0, nil
}

// Recent returns the latest runs, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		l.rebind(`SELECT id, source_path, content_hash, status, report_type, identifier, output_path, error, started_at, finished_at
FROM parse_runs ORDER BY started_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, common.NewAppError("DATABASE_ERROR", "query runs", errors.Join(common.ErrDatabase, err))
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r                 Run
			id, status        string
			started, finished string
		)
		if err := rows.Scan(&id, &r.SourcePath, &r.ContentHash, &status, &r.ReportType, &r.Identifier,
			&r.OutputPath, &r.Error, &started, &finished); err != nil {
			return nil, common.NewAppError("DATABASE_ERROR", "scan run", errors.Join(common.ErrDatabase, err))
		}
		r.ID, _ = uuid.Parse(id)
		r.Status = constants.RunStatus(status)
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (l *Ledger) rebind(q string) string {
	if l.dialect != DialectPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r Run) String() string {
	return fmt.Sprintf("%s %s %s", r.ID, r.Status, r.SourcePath)
}

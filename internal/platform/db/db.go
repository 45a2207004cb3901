package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"

	"workforce/internal/domain/records"
	"workforce/internal/platform/config"
)

// Handle owns the database connection behind a record store. Exactly one of
// the connection fields is set, depending on the configured backend.
type Handle struct {
	Backend string
	Store   records.StoreAPI
	Pool    *pgxpool.Pool
	SQL     *sql.DB
}

// Connect opens a pgx pool for a postgres:// DATABASE_URL.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// OpenSQLite opens a SQLite database with foreign keys enforced.
func OpenSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// one writer; also keeps a :memory: database alive across calls
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// Open connects to the backend named by cfg.DatabaseURL, migrates it when
// RunMigrations is set and returns a Handle wrapping the matching store.
func Open(ctx context.Context, cfg config.Config) (*Handle, error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		pool, err := Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.RunMigrations {
			if err := Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return &Handle{Backend: config.BackendPostgres, Store: records.NewStore(pool), Pool: pool}, nil
	case config.BackendSQLite:
		conn, err := OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if cfg.RunMigrations {
			if err := MigrateSQLite(ctx, conn); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return &Handle{Backend: config.BackendSQLite, Store: records.NewSQLiteStore(conn), SQL: conn}, nil
	case config.BackendMemory:
		return &Handle{Backend: config.BackendMemory, Store: records.NewMemoryStore()}, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q", cfg.DatabaseURL)
	}
}

func (h *Handle) Ping(ctx context.Context) error {
	switch {
	case h.Pool != nil:
		return h.Pool.Ping(ctx)
	case h.SQL != nil:
		return h.SQL.PingContext(ctx)
	default:
		return nil
	}
}

// Reset deletes every employee, review and attendance row.
func (h *Handle) Reset(ctx context.Context) error {
	switch {
	case h.Pool != nil:
		_, err := h.Pool.Exec(ctx, `TRUNCATE attendance_records, performance_reviews, employees RESTART IDENTITY`)
		return err
	case h.SQL != nil:
		tx, err := h.SQL.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		for _, stmt := range []string{
			`DELETE FROM attendance_records`,
			`DELETE FROM performance_reviews`,
			`DELETE FROM employees`,
			`DELETE FROM sqlite_sequence WHERE name IN ('attendance_records', 'performance_reviews', 'employees')`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		return tx.Commit()
	default:
		if mem, ok := h.Store.(*records.MemoryStore); ok {
			mem.Reset()
			return nil
		}
		return fmt.Errorf("reset not supported for backend %q", h.Backend)
	}
}

func (h *Handle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.SQL != nil {
		_ = h.SQL.Close()
	}
}

// Package storage persists the netlist graph in a single SQLite file.
//
// Nodes are unique by name; edges are appended as the netlist is read and
// later annotated in place with delays. All access goes through one
// connection, so a bulk session's transaction is visible to every read and
// write made while it is open.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"

	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Store is the SQLite-backed graph store
type Store struct {
	db      *sql.DB
	path    string
	logger  logging.Logger
	metrics *metrics.Registry

	mu      sync.Mutex
	session *sql.Tx
	closed  bool
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for write and session events
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrNop(logger)
	}
}

// WithMetrics records storage operations into reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Store) {
		s.metrics = reg
	}
}

// Open opens (or creates) the database file at path. Call Initialize before
// the first write to a new file.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, NewError("open").Entity("database").Context(path).Cause(err).Err()
	}

	// One connection: SQLite has a single writer, and a pinned session
	// transaction must be the only way in while it is open.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewError("open").Entity("database").Context(path).Cause(err).Err()
	}

	s := &Store{
		db:     db,
		path:   path,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("storage"), logging.String("db", path))
	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Initialize applies connection tuning and creates the schema. It is safe to
// call on an existing database.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ClosedError(opInitialize)
	}
	if s.session != nil {
		return NewError(opInitialize).Entity("schema").Cause(errors.New("not allowed inside a bulk session")).Err()
	}

	start := time.Now()
	for _, stmt := range append(pragmas[:len(pragmas):len(pragmas)], schema...) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.record(opInitialize, err, start, 0)
			return NewError(opInitialize).Entity("schema").Context(s.path).Cause(err).Err()
		}
	}
	s.record(opInitialize, nil, start, 0)
	s.logger.Debug("schema initialized")
	return nil
}

// Ping checks that the database is reachable. While a bulk session holds
// the only connection the session itself proves liveness.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ClosedError("ping")
	}
	if s.session != nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return NewError("ping").Entity("database").Context(s.path).Cause(err).Err()
	}
	return nil
}

// Close releases the database. Further calls return ErrStorageClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// reader returns the session transaction when one is open. Callers hold mu.
func (s *Store) reader() querier {
	if s.session != nil {
		return s.session
	}
	return s.db
}

func (s *Store) record(op string, err error, start time.Time, rows int64) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordStorageOperation(op, metrics.Status(err), time.Since(start), int(rows))
}

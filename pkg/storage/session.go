package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
)

const savepointName = "batch"

// WithBulkSession runs fn with one transaction pinned for its whole
// duration. Every write made inside fn runs under its own savepoint: a
// failed write rolls back alone and the writes before it survive. When fn
// returns, panics or fails, whatever succeeded is committed.
//
// A call made while a session is already open runs fn directly. Cancelling
// ctx stops fn's writes but never rolls back committed batches.
func (s *Store) WithBulkSession(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ClosedError(opSession)
	}
	if s.session != nil {
		s.mu.Unlock()
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(context.WithoutCancel(ctx), nil)
	if err != nil {
		s.mu.Unlock()
		return NewError("begin").Entity("session").Cause(err).Err()
	}
	s.session = tx
	s.mu.Unlock()

	timer := logging.StartTimer(s.logger, "bulk session committed")
	defer func() {
		s.mu.Lock()
		s.session = nil
		commitErr := tx.Commit()
		s.mu.Unlock()

		if commitErr != nil {
			s.logger.Error("bulk session commit failed", logging.Error(commitErr))
			err = errors.Join(err, NewError("commit").Entity("session").Cause(commitErr).Err())
			return
		}
		timer.End()
	}()

	return fn(ctx)
}

// InBulkSession reports whether a session is currently open
func (s *Store) InBulkSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

type writeFunc func(ctx context.Context, q querier) (int64, error)

// write runs fn atomically: under a savepoint of the open session, or in a
// transaction of its own. It returns the rows fn reports as affected.
func (s *Store) write(ctx context.Context, op string, fn writeFunc) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	start := time.Now()
	var rows int64
	var err error
	if s.session != nil {
		rows, err = s.inSavepoint(ctx, op, fn)
	} else {
		rows, err = s.inTransaction(ctx, fn)
	}
	s.record(op, err, start, rows)
	return rows, err
}

func (s *Store) inTransaction(ctx context.Context, fn writeFunc) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := fn(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

func (s *Store) inSavepoint(ctx context.Context, op string, fn writeFunc) (int64, error) {
	tx := s.session
	// Savepoint bookkeeping must run even when ctx is already cancelled.
	bg := context.WithoutCancel(ctx)

	if _, err := tx.ExecContext(bg, "SAVEPOINT "+savepointName); err != nil {
		return 0, err
	}

	rows, err := fn(ctx, tx)
	if err != nil {
		s.logger.Warn("batch rolled back", logging.Operation(op), logging.Error(err))
		if _, rbErr := tx.ExecContext(bg, "ROLLBACK TO "+savepointName); rbErr != nil {
			return 0, errors.Join(err, rbErr)
		}
		if _, relErr := tx.ExecContext(bg, "RELEASE "+savepointName); relErr != nil {
			return 0, errors.Join(err, relErr)
		}
		return 0, err
	}

	if _, err := tx.ExecContext(bg, "RELEASE "+savepointName); err != nil {
		return 0, err
	}
	return rows, nil
}

// execEach runs a prepared statement once per element and sums the affected
// row counts
func execEach(ctx context.Context, q querier, query string, n int, args func(i int) []any) (int64, error) {
	stmt, err := q.PrepareContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var total int64
	for i := range n {
		res, err := stmt.ExecContext(ctx, args(i)...)
		if err != nil {
			return total, err
		}
		if affected, err := res.RowsAffected(); err == nil {
			total += affected
		}
	}
	return total, nil
}

var (
	_ querier = (*sql.DB)(nil)
	_ querier = (*sql.Tx)(nil)
)

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

const (
	upsertTableSQL = `INSERT INTO ghs_tables (dataset, name, header, row_count, written_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (dataset, name) DO UPDATE
SET header = EXCLUDED.header, row_count = EXCLUDED.row_count, written_at = EXCLUDED.written_at`

	deleteRowsSQL = `DELETE FROM ghs_rows WHERE dataset = $1 AND name = $2`

	insertRowSQL = `INSERT INTO ghs_rows (dataset, name, position, cells) VALUES ($1, $2, $3, $4)`
)

// Sink replaces the stored copy of each table it is given. Each table is
// written in one transaction, so readers never see a partial table.
type Sink struct {
	conn *Connection
	log  logging.Logger
}

// NewSink returns a Sink writing through conn. The schema must already be
// migrated.
func NewSink(conn *Connection, log logging.Logger) *Sink {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Sink{conn: conn, log: log.Named("postgres")}
}

func (s *Sink) Name() string { return "postgres" }

func (s *Sink) Write(ctx context.Context, t *table.Table) (err error) {
	header, err := json.Marshal(t.Header)
	if err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to encode header")
	}

	tx, err := s.conn.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, upsertTableSQL, t.Dataset, t.Name, string(header), t.Len()); err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to upsert table").WithDetail(t.Key())
	}
	if _, err = tx.ExecContext(ctx, deleteRowsSQL, t.Dataset, t.Name); err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to clear rows").WithDetail(t.Key())
	}

	if t.Len() > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx, insertRowSQL)
		if err != nil {
			return errors.Wrap(err, errors.CodeSinkWrite, "failed to prepare insert").WithDetail(t.Key())
		}
		defer stmt.Close()

		for i, row := range t.Rows {
			var cells []byte
			if cells, err = json.Marshal(row); err != nil {
				return errors.Wrap(err, errors.CodeSerialization, "failed to encode row")
			}
			if _, err = stmt.ExecContext(ctx, t.Dataset, t.Name, i, string(cells)); err != nil {
				return errors.Wrap(err, errors.CodeSinkWrite, "failed to insert row").
					WithDetailf("%s position=%d", t.Key(), i)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to commit").WithDetail(t.Key())
	}
	s.log.Debug("table stored", logging.String("table", t.Key()), logging.Int("rows", t.Len()))
	return nil
}

// Close closes the underlying connection.
func (s *Sink) Close() error {
	return s.conn.Close()
}

package database

import (
	"context"
	"fmt"
)

// Sentence records are flat: there is no chunk entity in storage, only
// sentences tagged with their task id. The composite index backs the keyset
// pagination in ListSentences.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sentences (
	id                  UUID PRIMARY KEY,
	task_id             TEXT NOT NULL,
	english             TEXT NOT NULL,
	translation_hindi   TEXT NOT NULL,
	pronunciation_hindi TEXT NOT NULL,
	start_time          TEXT NOT NULL,
	end_time            TEXT NOT NULL,
	start_time_float    DOUBLE PRECISION NOT NULL,
	end_time_float      DOUBLE PRECISION NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sentences_task_order
	ON sentences (task_id, start_time_float, id);
`

// EnsureSchema creates the sentences table and its indexes if missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	db.log.Debug().Msg("schema ensured")
	return nil
}

package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lifecycle_events (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			participant_id TEXT NOT NULL,
			kind           TEXT NOT NULL,
			detail         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lifecycle_ts ON lifecycle_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_lifecycle_participant ON lifecycle_events(participant_id)`,

		`CREATE TABLE IF NOT EXISTS economy_events (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			participant_id TEXT NOT NULL,
			operation      TEXT NOT NULL,
			result         TEXT NOT NULL,
			points         INTEGER,
			currency       INTEGER,
			counterparty   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_economy_ts ON economy_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_economy_participant ON economy_events(participant_id)`,

		`CREATE TABLE IF NOT EXISTS tick_summaries (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			active    INTEGER,
			died      INTEGER,
			warned    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tick_ts ON tick_summaries(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordLifecycle(ev *LifecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO lifecycle_events
		(id, timestamp, participant_id, kind, detail)
		VALUES (?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), ev.ParticipantID, string(ev.Kind), ev.Detail,
	)
	return err
}

func (r *SQLiteRecorder) RecordOperation(ev *OperationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO economy_events
		(id, timestamp, participant_id, operation, result, points, currency, counterparty)
		VALUES (?,?,?,?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), ev.ParticipantID,
		ev.Operation, ev.Result, ev.Points, ev.Currency, ev.Counterparty,
	)
	return err
}

func (r *SQLiteRecorder) RecordTick(sum *TickSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO tick_summaries
		(id, timestamp, active, died, warned)
		VALUES (?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), sum.Active, sum.Died, sum.Warned,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"RoundSentinel/internal/model"
)

// SQLiteRecorder persists session history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at  INTEGER NOT NULL,
			session_id   TEXT    NOT NULL,
			round_index  INTEGER NOT NULL,
			round_ts     INTEGER NOT NULL,
			multiplier   REAL    NOT NULL,
			score        INTEGER,
			round_type   TEXT,
			pink_entry   INTEGER,
			momentum     REAL,
			msi          REAL,
			entry_zone   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id, round_index)`,

		`CREATE TABLE IF NOT EXISTS round_edits (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at INTEGER NOT NULL,
			session_id  TEXT    NOT NULL,
			action      TEXT    NOT NULL,
			round_index INTEGER NOT NULL,
			before_mult REAL,
			after_mult  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edits_session ON round_edits(session_id)`,

		`CREATE TABLE IF NOT EXISTS resets (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at    INTEGER NOT NULL,
			session_id     TEXT    NOT NULL,
			rounds_cleared INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at     INTEGER NOT NULL,
			session_id      TEXT    NOT NULL,
			rounds          INTEGER,
			window_size     INTEGER,
			pink_threshold  REAL,
			strict_mode     INTEGER,
			momentum        REAL,
			msi             REAL,
			entry_zone      TEXT,
			pink_zones      INTEGER,
			danger_zones    INTEGER,
			danger_score    INTEGER,
			projections     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_session ON snapshots(session_id, recorded_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRound(evt *RoundEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rounds
		(recorded_at, session_id, round_index, round_ts, multiplier, score, round_type,
		 pink_entry, momentum, msi, entry_zone)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Index, evt.Round.Timestamp.UnixMilli(),
		evt.Round.Multiplier, evt.Round.Score, string(evt.Round.Type),
		evt.Round.PinkAtEntry, evt.Momentum, nullableMSI(evt.MSI), string(evt.Zone),
	)
	return err
}

func (r *SQLiteRecorder) RecordEdit(evt *EditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO round_edits
		(recorded_at, session_id, action, round_index, before_mult, after_mult)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Action, evt.Index, evt.Before, evt.After,
	)
	return err
}

func (r *SQLiteRecorder) RecordReset(evt *ResetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO resets (recorded_at, session_id, rounds_cleared) VALUES (?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.RoundsCleared,
	)
	return err
}

func (r *SQLiteRecorder) RecordSnapshot(snap *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig := snap.Signal
	_, err := r.db.Exec(`INSERT INTO snapshots
		(recorded_at, session_id, rounds, window_size, pink_threshold, strict_mode,
		 momentum, msi, entry_zone, pink_zones, danger_zones, danger_score, projections)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.TakenAt.Unix(), snap.SessionID, len(snap.Rounds),
		snap.Settings.WindowSize, snap.Settings.PinkThreshold, snap.Settings.StrictMode,
		snap.LatestMomentum(), nullableMSI(sig.LatestMSI), string(sig.Tier.Zone),
		len(snap.PinkZones), sig.DangerCount, sig.DangerScore, len(snap.Projections),
	)
	return err
}

// CountRows returns the number of rows in a journal table.
func (r *SQLiteRecorder) CountRows(table string) (int, error) {
	switch table {
	case "rounds", "round_edits", "resets", "snapshots":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}

func nullableMSI(v model.MSIValue) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Value, Valid: v.Ready}
}

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/polyvagal-lab/profiler/internal/hrv"
	"github.com/polyvagal-lab/profiler/internal/profile"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	profile_id             TEXT PRIMARY KEY,
	formula                TEXT NOT NULL,
	full_formula           TEXT NOT NULL,
	physiological          TEXT NOT NULL,
	presentation           TEXT NOT NULL,
	is_pseudo              INTEGER NOT NULL,
	stress_response        TEXT NOT NULL,
	recovery_speed         REAL NOT NULL,
	recovery_indeterminate INTEGER NOT NULL,
	reactivity             REAL NOT NULL,
	coherence              REAL NOT NULL,
	primary_trigger        TEXT NOT NULL,
	secondary_trigger      TEXT,
	sensitivity_json       TEXT NOT NULL,
	created_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS classification_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_id  TEXT NOT NULL,
	mode        TEXT NOT NULL,
	input_json  TEXT,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (profile_id) REFERENCES profiles(profile_id)
);
`

// #endregion schema

// #region modes

// Classification modes recorded in the audit log.
const (
	ModeThreePhase   = "three_phase"
	ModeMultiTrigger = "multi_trigger"
)

// #endregion modes

// #region record

// Record is a persisted profile with its storage identity.
type Record struct {
	ProfileID string
	Profile   profile.Profile
	CreatedAt time.Time
}

// #endregion record

// #region store-struct

// Store persists classified profiles in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region save

// SaveProfile inserts a classified profile and its audit entry atomically.
// mode is one of the Mode* constants; inputJSON may be empty when the caller
// does not retain the raw measurement.
func (s *Store) SaveProfile(p profile.Profile, mode, inputJSON string) (Record, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	sensJSON, err := json.Marshal(p.Sensitivity)
	if err != nil {
		return Record{}, fmt.Errorf("marshal sensitivity: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Record{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var secondaryPtr interface{}
	if p.SecondaryTrigger != "" {
		secondaryPtr = string(p.SecondaryTrigger)
	}

	_, err = tx.Exec(
		`INSERT INTO profiles (
			profile_id, formula, full_formula, physiological, presentation,
			is_pseudo, stress_response, recovery_speed, recovery_indeterminate,
			reactivity, coherence, primary_trigger, secondary_trigger,
			sensitivity_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Formula(), p.FullFormula(), string(p.Physiological), string(p.Presentation),
		boolToInt(p.IsPseudo), string(p.StressResponse), p.RecoverySpeedPercent,
		boolToInt(p.RecoveryIndeterminate), p.ReactivityIndex, p.CoherenceScore,
		string(p.PrimaryTrigger), secondaryPtr, string(sensJSON),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert profile: %w", err)
	}

	var inputPtr interface{}
	if inputJSON != "" {
		inputPtr = inputJSON
	}
	_, err = tx.Exec(
		`INSERT INTO classification_log (profile_id, mode, input_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, mode, inputPtr, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert log entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit: %w", err)
	}

	return Record{ProfileID: id, Profile: p, CreatedAt: now}, nil
}

// #endregion save

// #region get

// GetProfile retrieves a stored profile by ID.
func (s *Store) GetProfile(id string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT profile_id, physiological, presentation, is_pseudo, stress_response,
			recovery_speed, recovery_indeterminate, reactivity, coherence,
			primary_trigger, secondary_trigger, sensitivity_json, created_at
		 FROM profiles WHERE profile_id = ?`, id,
	)
	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return rec, nil
}

// #endregion get

// #region list

// ListProfiles returns the most recently classified profiles.
func (s *Store) ListProfiles(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT profile_id, physiological, presentation, is_pseudo, stress_response,
			recovery_speed, recovery_indeterminate, reactivity, coherence,
			primary_trigger, secondary_trigger, sensitivity_json, created_at
		 FROM profiles ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list

// #region scanning

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var physiological, presentation, stressResponse, primaryTrigger string
	var secondaryTrigger sql.NullString
	var isPseudo, recoveryIndeterminate int
	var sensJSON, createdStr string

	err := row.Scan(
		&rec.ProfileID, &physiological, &presentation, &isPseudo, &stressResponse,
		&rec.Profile.RecoverySpeedPercent, &recoveryIndeterminate,
		&rec.Profile.ReactivityIndex, &rec.Profile.CoherenceScore,
		&primaryTrigger, &secondaryTrigger, &sensJSON, &createdStr,
	)
	if err != nil {
		return Record{}, err
	}

	rec.Profile.Physiological = profile.State(physiological)
	rec.Profile.Presentation = profile.State(presentation)
	rec.Profile.IsPseudo = isPseudo != 0
	rec.Profile.StressResponse = profile.State(stressResponse)
	rec.Profile.RecoveryIndeterminate = recoveryIndeterminate != 0
	rec.Profile.PrimaryTrigger = hrv.TriggerCategory(primaryTrigger)
	if secondaryTrigger.Valid {
		rec.Profile.SecondaryTrigger = hrv.TriggerCategory(secondaryTrigger.String)
	}
	if err := json.Unmarshal([]byte(sensJSON), &rec.Profile.Sensitivity); err != nil {
		return Record{}, fmt.Errorf("unmarshal sensitivity: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion scanning

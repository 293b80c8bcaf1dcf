package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/sgrier/stacker/internal/models"
)

const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routines (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		days          TEXT NOT NULL DEFAULT '[]',
		streak        INTEGER NOT NULL DEFAULT 0,
		schedule_type TEXT NOT NULL DEFAULT '',
		interval      INTEGER NOT NULL DEFAULT 0,
		start_date    TEXT NOT NULL DEFAULT '',
		day_of_month  INTEGER NOT NULL DEFAULT 0,
		position      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stacks (
		id             TEXT PRIMARY KEY,
		routine_id     TEXT,
		title          TEXT NOT NULL,
		is_expanded    INTEGER NOT NULL DEFAULT 0,
		actions        TEXT NOT NULL DEFAULT '[]',
		streak         INTEGER NOT NULL DEFAULT 0,
		schedule_type  TEXT NOT NULL DEFAULT '',
		schedule_days  TEXT NOT NULL DEFAULT '[]',
		interval       INTEGER NOT NULL DEFAULT 0,
		is_schedulable INTEGER NOT NULL DEFAULT 1,
		start_date     TEXT NOT NULL DEFAULT '',
		is_one_time    INTEGER NOT NULL DEFAULT 0,
		day_of_month   INTEGER NOT NULL DEFAULT 0,
		position       INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		owner_id     TEXT NOT NULL,
		item_id      TEXT NOT NULL,
		completed_on TEXT NOT NULL,
		PRIMARY KEY (owner_id, item_id)
	)`,
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'stacker init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent, so an older file gains any missing
	// tables on load.
	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)",
		fmt.Sprintf("%d", schemaVersion),
	)
	return err
}

func (s *SQLiteStore) ReadSnapshot() (models.Snapshot, error) {
	if s.db == nil {
		return models.Snapshot{}, fmt.Errorf("storage not loaded")
	}

	snap := models.Snapshot{
		Routines: []models.Routine{},
		Library:  []models.Stack{},
		Ledger:   models.CompletionLedger{},
	}

	routines, err := s.readRoutines()
	if err != nil {
		return models.Snapshot{}, err
	}

	stacksByRoutine, library, err := s.readStacks()
	if err != nil {
		return models.Snapshot{}, err
	}

	for _, r := range routines {
		r.Stacks = stacksByRoutine[r.ID]
		if r.Stacks == nil {
			r.Stacks = []models.Stack{}
		}
		snap.Routines = append(snap.Routines, r)
	}
	snap.Library = library

	if err := s.readLedger(snap.Ledger); err != nil {
		return models.Snapshot{}, err
	}

	snap.Normalize()
	return snap, nil
}

func (s *SQLiteStore) readRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, days, streak, schedule_type, interval, start_date, day_of_month
		FROM routines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		var r models.Routine
		var days, schedType string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &days, &r.Streak,
			&schedType, &r.Interval, &r.StartDate, &r.DayOfMonth); err != nil {
			return nil, err
		}
		r.ScheduleType = models.ScheduleType(schedType)
		r.Days = decodeDays(days)
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *SQLiteStore) readStacks() (map[string][]models.Stack, []models.Stack, error) {
	rows, err := s.db.Query(`
		SELECT id, routine_id, title, is_expanded, actions, streak, schedule_type,
		       schedule_days, interval, is_schedulable, start_date, is_one_time, day_of_month
		FROM stacks ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read stacks: %w", err)
	}
	defer rows.Close()

	byRoutine := make(map[string][]models.Stack)
	library := []models.Stack{}

	for rows.Next() {
		var st models.Stack
		var routineID sql.NullString
		var actionsJSON, days, schedType string
		if err := rows.Scan(&st.ID, &routineID, &st.Title, &st.IsExpanded, &actionsJSON,
			&st.Streak, &schedType, &days, &st.Interval, &st.Schedulable,
			&st.StartDate, &st.IsOneTime, &st.DayOfMonth); err != nil {
			return nil, nil, err
		}
		st.ScheduleType = models.ScheduleType(schedType)
		st.ScheduleDays = decodeDays(days)

		// Corrupt action payloads coerce to empty rather than failing
		// the load.
		var actions models.Actions
		_ = actions.UnmarshalJSON([]byte(actionsJSON))
		st.Actions = actions

		if routineID.Valid && routineID.String != "" {
			byRoutine[routineID.String] = append(byRoutine[routineID.String], st)
		} else {
			library = append(library, st)
		}
	}
	return byRoutine, library, rows.Err()
}

func (s *SQLiteStore) readLedger(ledger models.CompletionLedger) error {
	rows, err := s.db.Query("SELECT owner_id, item_id, completed_on FROM completions")
	if err != nil {
		return fmt.Errorf("failed to read completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner, item, date string
		if err := rows.Scan(&owner, &item, &date); err != nil {
			return err
		}
		ledger[models.LedgerKey{Owner: owner, Item: item}] = date
	}
	return rows.Err()
}

// WriteSnapshot replaces the stored state wholesale inside one transaction.
func (s *SQLiteStore) WriteSnapshot(snap models.Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"routines", "stacks", "completions"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, r := range snap.Routines {
		if _, err := tx.Exec(`
			INSERT INTO routines (id, title, description, days, streak, schedule_type, interval, start_date, day_of_month, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Description, encodeDays(r.Days), r.Streak,
			string(r.ScheduleType), r.Interval, r.StartDate, r.DayOfMonth, pos,
		); err != nil {
			return fmt.Errorf("failed to write routine %s: %w", r.ID, err)
		}

		for pos, st := range r.Stacks {
			if err := insertStack(tx, st, r.ID, pos); err != nil {
				return err
			}
		}
	}

	for pos, st := range snap.Library {
		if err := insertStack(tx, st, "", pos); err != nil {
			return err
		}
	}

	for key, date := range snap.Ledger {
		if _, err := tx.Exec(
			"INSERT INTO completions (owner_id, item_id, completed_on) VALUES (?, ?, ?)",
			key.Owner, key.Item, date,
		); err != nil {
			return fmt.Errorf("failed to write completion entry: %w", err)
		}
	}

	return tx.Commit()
}

func insertStack(tx *sql.Tx, st models.Stack, routineID string, pos int) error {
	actionsJSON, err := json.Marshal(st.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions for stack %s: %w", st.ID, err)
	}

	var parent sql.NullString
	if routineID != "" {
		parent = sql.NullString{String: routineID, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO stacks (id, routine_id, title, is_expanded, actions, streak, schedule_type,
		                    schedule_days, interval, is_schedulable, start_date, is_one_time, day_of_month, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, parent, st.Title, st.IsExpanded, string(actionsJSON), st.Streak,
		string(st.ScheduleType), encodeDays(st.ScheduleDays), st.Interval,
		st.Schedulable, st.StartDate, st.IsOneTime, st.DayOfMonth, pos,
	)
	if err != nil {
		return fmt.Errorf("failed to write stack %s: %w", st.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func encodeDays(days []string) string {
	if days == nil {
		days = []string{}
	}
	data, err := json.Marshal(days)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeDays(data string) []string {
	var days []string
	if err := json.Unmarshal([]byte(data), &days); err != nil || days == nil {
		return []string{}
	}
	return days
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Utterance is one responder turn as recorded in the transcript store.
// Visibility determines who gets it back as history:
//   - "public": everyone
//   - "team:werewolf": werewolves only
//   - "actor": only the speaker
//   - "hidden": only the speaker, and never printed
type Utterance struct {
	ID         int64  `db:"id"`
	RunID      string `db:"run_id"`
	Day        int    `db:"day"`
	Phase      string `db:"phase"`
	Speaker    string `db:"speaker"`
	Label      string `db:"label"`
	Visibility string `db:"visibility"`
	Prompt     string `db:"prompt"`
	Response   string `db:"response"`
	Error      string `db:"error"` // non-empty when the turn failed
}

// Visibility types
const (
	VisibilityPublic       = "public"
	VisibilityTeamWerewolf = "team:werewolf"
	VisibilityActor        = "actor"
	VisibilityHidden       = "hidden"
)

// Viewer is whoever is about to speak, for history filtering.
type Viewer struct {
	Name string
	Role Role // empty for the game master and roundtable personas
}

// Store is the per-process transcript database.
type Store struct {
	db *sqlx.DB
}

// openStore connects to dsn and creates the schema.
func openStore(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dsn, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		started_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_player (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES run(id),
		UNIQUE(run_id, name)
	);
	CREATE TABLE IF NOT EXISTS utterance (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		phase TEXT NOT NULL,
		speaker TEXT NOT NULL,
		label TEXT NOT NULL,
		visibility TEXT NOT NULL DEFAULT 'public',
		prompt TEXT NOT NULL DEFAULT '',
		response TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (run_id) REFERENCES run(id)
	);
	CREATE INDEX IF NOT EXISTS idx_utterance_run ON utterance(run_id, day);
	`
	if _, err := s.db.Exec(schema); err != nil {
		log.Printf("Store.init error: %v", err)
		return err
	}
	DebugLog("Store.init", "transcript schema ready")
	return nil
}

// createRun inserts a run row and returns its id.
func (s *Store) createRun(mode string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO run (id, mode, started_at) VALUES (?, ?, ?)`,
		id, mode, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

func (s *Store) addPlayers(runID string, players []Player) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("add players: %w", err)
	}
	for _, p := range players {
		if _, err := tx.Exec(`INSERT INTO run_player (run_id, name, role) VALUES (?, ?, ?)`,
			runID, p.Name, string(p.Role)); err != nil {
			tx.Rollback()
			return fmt.Errorf("add player %s: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// runPlayers returns the seating recorded for a run, in insertion order.
func (s *Store) runPlayers(runID string) ([]Player, error) {
	var rows []struct {
		Name string `db:"name"`
		Role string `db:"role"`
	}
	if err := s.db.Select(&rows, `SELECT name, role FROM run_player WHERE run_id = ? ORDER BY rowid`, runID); err != nil {
		return nil, err
	}
	players := make([]Player, len(rows))
	for i, r := range rows {
		players[i] = Player{Name: r.Name, Role: Role(r.Role), Alive: true}
	}
	return players, nil
}

func (s *Store) recordUtterance(u Utterance) error {
	_, err := s.db.NamedExec(`
		INSERT INTO utterance (run_id, day, phase, speaker, label, visibility, prompt, response, error)
		VALUES (:run_id, :day, :phase, :speaker, :label, :visibility, :prompt, :response, :error)`, u)
	if err != nil {
		return fmt.Errorf("record utterance: %w", err)
	}
	return nil
}

// utterances returns every recorded turn of a run, oldest first.
func (s *Store) utterances(runID string) ([]Utterance, error) {
	var out []Utterance
	err := s.db.Select(&out, `
		SELECT rowid as id, run_id, day, phase, speaker, label, visibility, prompt, response, error
		FROM utterance
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	return out, err
}

// canSeeUtterance determines if viewer may have u in their history.
func canSeeUtterance(u Utterance, viewer Viewer) bool {
	if u.Error != "" {
		return false
	}
	switch u.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityTeamWerewolf:
		return viewer.Role == RoleWerewolf
	case VisibilityActor, VisibilityHidden:
		return viewer.Name == u.Speaker
	default:
		return false
	}
}

// visibleHistory renders the lines viewer is allowed to see as "label: response".
func (s *Store) visibleHistory(runID string, viewer Viewer) ([]string, error) {
	all, err := s.utterances(runID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	var lines []string
	for _, u := range all {
		if canSeeUtterance(u, viewer) {
			lines = append(lines, u.Label+": "+u.Response)
		}
	}
	return lines, nil
}

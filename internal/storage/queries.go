package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-nhl-lineup/internal/model"
)

// ImportExists returns true if an import with the given hash is already stored.
func (db *DB) ImportExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM imports WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertImport inserts an import record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertImport(s model.ImportSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO imports(hash, source, season, situation, imported_at, teams, players)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Hash, s.Source, s.Season, s.Situation, s.ImportedAt, s.Teams, s.Players,
	)
	return err
}

// InsertPlayers bulk-inserts every rostered player of teams in a transaction.
// Roster positions are kept so LoadTeams returns players in file order.
func (db *DB) InsertPlayers(importHash string, teams []model.Team) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertPlayers(tx, importHash, teams); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveImport stores an import record and its players atomically: either both
// land or neither does.
func (db *DB) SaveImport(s model.ImportSummary, teams []model.Team) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO imports(hash, source, season, situation, imported_at, teams, players)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Hash, s.Source, s.Season, s.Situation, s.ImportedAt, s.Teams, s.Players,
	); err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	if err := insertPlayers(tx, s.Hash, teams); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPlayers(tx *sql.Tx, importHash string, teams []model.Team) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO players(
			import_hash, team, name, position,
			games_played, ice_time, xga, on_ice_xga60,
			hits, takeaways, giveaways, blocked_shots,
			goals, points, rebound_goals, shifts, penalties,
			hd_xgoals, takeaway_efficiency, roster_order
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range teams {
		for i, p := range t.Roster {
			_, err = stmt.Exec(
				importHash, t.Name, p.Name, p.Position,
				p.GamesPlayed, p.IceTime, p.ExpectedGoalsAgainst, p.OnIceXGAPer60,
				p.Hits, p.Takeaways, p.Giveaways, p.BlockedShots,
				p.Goals, p.Points, p.ReboundGoals, p.Shifts, p.Penalties,
				p.HighDangerXGoals, p.TakeawayEfficiency, i,
			)
			if err != nil {
				return fmt.Errorf("insert player %s/%s: %w", t.Name, p.Name, err)
			}
		}
	}
	return nil
}

// DeleteImport removes an import and its players.
func (db *DB) DeleteImport(hash string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM players WHERE import_hash = ?", hash); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM imports WHERE hash = ?", hash); err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	return tx.Commit()
}

const importColumns = `hash, source, season, situation, imported_at, teams, players`

func scanImport(sc interface{ Scan(...any) error }) (model.ImportSummary, error) {
	var s model.ImportSummary
	err := sc.Scan(&s.Hash, &s.Source, &s.Season, &s.Situation, &s.ImportedAt, &s.Teams, &s.Players)
	return s, err
}

// ListImports returns all stored imports ordered by imported_at desc.
func (db *DB) ListImports() ([]model.ImportSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + importColumns + ` FROM imports ORDER BY imported_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ImportSummary
	for rows.Next() {
		s, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetImportByPrefix finds the first import whose hash starts with the given prefix.
func (db *DB) GetImportByPrefix(prefix string) (*model.ImportSummary, error) {
	s, err := scanImport(db.conn.QueryRow(
		`SELECT `+importColumns+` FROM imports WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestImport returns the most recent import, or nil when the store is empty.
func (db *DB) LatestImport() (*model.ImportSummary, error) {
	s, err := scanImport(db.conn.QueryRow(
		`SELECT ` + importColumns + ` FROM imports ORDER BY imported_at DESC, hash LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadTeams rebuilds the teams of one import, ordered by name with rosters in
// their original order.
func (db *DB) LoadTeams(importHash string) ([]model.Team, error) {
	rows, err := db.conn.Query(`
		SELECT team, name, position,
		       games_played, ice_time, xga, on_ice_xga60,
		       hits, takeaways, giveaways, blocked_shots,
		       goals, points, rebound_goals, shifts, penalties,
		       hd_xgoals, takeaway_efficiency
		FROM players WHERE import_hash = ?
		ORDER BY team, roster_order`, importHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.Team, &p.Name, &p.Position,
			&p.GamesPlayed, &p.IceTime, &p.ExpectedGoalsAgainst, &p.OnIceXGAPer60,
			&p.Hits, &p.Takeaways, &p.Giveaways, &p.BlockedShots,
			&p.Goals, &p.Points, &p.ReboundGoals, &p.Shifts, &p.Penalties,
			&p.HighDangerXGoals, &p.TakeawayEfficiency); err != nil {
			return nil, err
		}
		if n := len(teams); n == 0 || teams[n-1].Name != p.Team {
			teams = append(teams, model.Team{Name: p.Team})
		}
		last := &teams[len(teams)-1]
		last.Roster = append(last.Roster, p)
	}
	return teams, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULLs become empty strings.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
			case []byte:
				row[i] = string(x)
			case float64:
				row[i] = fmt.Sprintf("%.4g", x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

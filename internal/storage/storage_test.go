package storage

import (
	"testing"

	"github.com/pable/go-nhl-lineup/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTeams() []model.Team {
	return []model.Team{
		{Name: "BOS", Roster: []model.Player{
			{Name: "Zed", Team: "BOS", Position: "D", GamesPlayed: 70, IceTime: 1200.5, ExpectedGoalsAgainst: 12.25, Hits: 80, Takeaways: 20, Giveaways: 15, TakeawayEfficiency: 0.8},
			{Name: "Abe", Team: "BOS", Position: "C", GamesPlayed: 82, IceTime: 1100, Goals: 30, Points: 65, HighDangerXGoals: 9.5},
		}},
		{Name: "NYR", Roster: []model.Player{
			{Name: "Mika", Team: "NYR", Position: "R", GamesPlayed: 60, OnIceXGAPer60: 2.1, ReboundGoals: 3},
		}},
	}
}

func TestImportInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	summary := model.ImportSummary{
		Hash:       "abc123",
		Source:     "skaters.csv",
		Season:     "2023",
		Situation:  "5on5",
		ImportedAt: "2025-01-01T10:00:00Z",
		Teams:      32,
		Players:    900,
	}
	if err := db.InsertImport(summary); err != nil {
		t.Fatalf("InsertImport: %v", err)
	}

	exists, err := db.ImportExists("abc123")
	if err != nil {
		t.Fatalf("ImportExists: %v", err)
	}
	if !exists {
		t.Error("expected import to exist after insert")
	}

	exists2, _ := db.ImportExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent import to not exist")
	}
}

func TestListImportsAndLatest(t *testing.T) {
	db := openMemDB(t)

	latest, err := db.LatestImport()
	if err != nil {
		t.Fatalf("LatestImport on empty store: %v", err)
	}
	if latest != nil {
		t.Error("expected nil latest import on empty store")
	}

	for _, s := range []model.ImportSummary{
		{Hash: "h1", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z"},
		{Hash: "h2", Source: "b.csv", ImportedAt: "2025-02-01T00:00:00Z"},
	} {
		if err := db.InsertImport(s); err != nil {
			t.Fatalf("InsertImport: %v", err)
		}
	}

	list, err := db.ListImports()
	if err != nil {
		t.Fatalf("ListImports: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(list))
	}
	if list[0].Hash != "h2" {
		t.Errorf("expected h2 first (newest), got %s", list[0].Hash)
	}

	latest, err = db.LatestImport()
	if err != nil {
		t.Fatalf("LatestImport: %v", err)
	}
	if latest == nil || latest.Hash != "h2" {
		t.Errorf("expected latest h2, got %+v", latest)
	}
}

func TestGetImportByPrefix(t *testing.T) {
	db := openMemDB(t)

	db.InsertImport(model.ImportSummary{Hash: "deadbeef1234", Source: "x.csv", ImportedAt: "2025-01-01T00:00:00Z"})

	s, err := db.GetImportByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetImportByPrefix: %v", err)
	}
	if s == nil {
		t.Fatal("expected match for prefix 'deadb'")
	}
	if s.Hash != "deadbeef1234" {
		t.Errorf("unexpected hash %s", s.Hash)
	}

	s2, err := db.GetImportByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetImportByPrefix no-match: %v", err)
	}
	if s2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestPlayersRoundTrip(t *testing.T) {
	db := openMemDB(t)

	db.InsertImport(model.ImportSummary{Hash: "h1", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z"})
	if err := db.InsertPlayers("h1", sampleTeams()); err != nil {
		t.Fatalf("InsertPlayers: %v", err)
	}

	teams, err := db.LoadTeams("h1")
	if err != nil {
		t.Fatalf("LoadTeams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].Name != "BOS" || teams[1].Name != "NYR" {
		t.Errorf("team order: got %s, %s", teams[0].Name, teams[1].Name)
	}
	if len(teams[0].Roster) != 2 {
		t.Fatalf("expected 2 BOS players, got %d", len(teams[0].Roster))
	}
	// Roster order survives even though "Abe" sorts before "Zed".
	if teams[0].Roster[0].Name != "Zed" {
		t.Errorf("roster order: want Zed first, got %s", teams[0].Roster[0].Name)
	}

	zed := teams[0].Roster[0]
	if zed.GamesPlayed != 70 || zed.Hits != 80 || zed.Takeaways != 20 || zed.Giveaways != 15 {
		t.Errorf("Zed stats mismatch: %+v", zed)
	}
	if zed.IceTime != 1200.5 || zed.ExpectedGoalsAgainst != 12.25 {
		t.Errorf("Zed rates mismatch: toi=%f xga=%f", zed.IceTime, zed.ExpectedGoalsAgainst)
	}
	if zed.TakeawayEfficiency != 0.8 {
		t.Errorf("Zed efficiency: want 0.8, got %f", zed.TakeawayEfficiency)
	}
	if zed.Team != "BOS" {
		t.Errorf("Zed team: want BOS, got %s", zed.Team)
	}

	mika := teams[1].Roster[0]
	if mika.OnIceXGAPer60 != 2.1 || mika.ReboundGoals != 3 {
		t.Errorf("Mika stats mismatch: %+v", mika)
	}

	empty, err := db.LoadTeams("missing")
	if err != nil {
		t.Fatalf("LoadTeams missing: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no teams for unknown import, got %d", len(empty))
	}
}

func TestInsertIdempotency(t *testing.T) {
	db := openMemDB(t)

	s := model.ImportSummary{Hash: "idem1", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z"}
	db.InsertImport(s)
	// Second insert should not error (INSERT OR REPLACE).
	if err := db.InsertImport(s); err != nil {
		t.Errorf("second InsertImport should succeed (idempotent): %v", err)
	}
	if err := db.InsertPlayers("idem1", sampleTeams()); err != nil {
		t.Fatalf("InsertPlayers: %v", err)
	}
	if err := db.InsertPlayers("idem1", sampleTeams()); err != nil {
		t.Errorf("second InsertPlayers should succeed (idempotent): %v", err)
	}

	teams, _ := db.LoadTeams("idem1")
	if n := len(teams[0].Roster) + len(teams[1].Roster); n != 3 {
		t.Errorf("expected 3 players after re-insert, got %d", n)
	}
}

func TestDeleteImport(t *testing.T) {
	db := openMemDB(t)

	db.InsertImport(model.ImportSummary{Hash: "gone", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z"})
	db.InsertPlayers("gone", sampleTeams())

	if err := db.DeleteImport("gone"); err != nil {
		t.Fatalf("DeleteImport: %v", err)
	}
	if ok, _ := db.ImportExists("gone"); ok {
		t.Error("expected import to be deleted")
	}
	teams, _ := db.LoadTeams("gone")
	if len(teams) != 0 {
		t.Errorf("expected players to be deleted, got %d teams", len(teams))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	db.InsertImport(model.ImportSummary{Hash: "h1", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z"})
	db.InsertPlayers("h1", sampleTeams())

	cols, rows, err := db.QueryRaw("SELECT name, games_played, hd_xgoals FROM players WHERE team = 'BOS' ORDER BY name")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || cols[0] != "name" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Abe" || rows[0][1] != "82" || rows[0][2] != "9.5" {
		t.Errorf("unexpected first row %v", rows[0])
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestSaveImportIsAtomic(t *testing.T) {
	db := openMemDB(t)

	// Fail every player insert so the import row must not survive on its own.
	if _, err := db.conn.Exec(`CREATE TRIGGER fail_players BEFORE INSERT ON players
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	s := model.ImportSummary{Hash: "atomic1", Source: "a.csv", ImportedAt: "2025-01-01T00:00:00Z", Teams: 2, Players: 3}
	if err := db.SaveImport(s, sampleTeams()); err == nil {
		t.Fatal("expected SaveImport to fail while players cannot be inserted")
	}
	if ok, _ := db.ImportExists("atomic1"); ok {
		t.Error("import row left behind after failed player insert")
	}
	latest, err := db.LatestImport()
	if err != nil {
		t.Fatalf("LatestImport: %v", err)
	}
	if latest != nil {
		t.Errorf("expected no latest import, got %s", latest.Hash)
	}

	// Once the failure clears, a retry stores everything.
	if _, err := db.conn.Exec(`DROP TRIGGER fail_players`); err != nil {
		t.Fatalf("drop trigger: %v", err)
	}
	if err := db.SaveImport(s, sampleTeams()); err != nil {
		t.Fatalf("retry SaveImport: %v", err)
	}
	teams, err := db.LoadTeams("atomic1")
	if err != nil {
		t.Fatalf("LoadTeams: %v", err)
	}
	if n := len(teams[0].Roster) + len(teams[1].Roster); n != 3 {
		t.Errorf("expected 3 players after retry, got %d", n)
	}
}

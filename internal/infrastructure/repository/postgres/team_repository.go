package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
)

const teamColumns = "id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	const query = `
SELECT id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at
FROM teams
WHERE id = $1`

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	t, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]team.Team, error) {
	const query = `
SELECT id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at
FROM teams
WHERE owner_user_id = $1
ORDER BY id ASC`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerUserID); err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	roster, err := encodeRoster(t.Roster)
	if err != nil {
		return err
	}
	scores, err := encodeGameweekScores(t.GameweekPoints)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO teams (id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.OwnerUserID, t.Name, roster, t.Budget, t.TotalPoints, scores, t.Version, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// ListOwningPlayer scans roster documents for the player. The gameweek
// argument is accepted for interface symmetry; rosters are not versioned per
// gameweek, the live roster decides ownership.
func (r *TeamRepository) ListOwningPlayer(ctx context.Context, gameweekNumber int, playerID string) ([]team.Ownership, error) {
	const query = `
SELECT id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at
FROM teams
WHERE EXISTS (
    SELECT 1 FROM jsonb_array_elements(roster) AS slot
    WHERE slot->>'player_id' = $1
)
ORDER BY id ASC`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("list teams owning player: %w", err)
	}

	ownerships := make([]team.Ownership, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		slot, ok := t.SlotFor(playerID)
		if !ok {
			continue
		}
		ownerships = append(ownerships, team.Ownership{TeamID: t.ID, Slot: slot})
	}
	return ownerships, nil
}

func (r *TeamRepository) AddGameweekPoints(ctx context.Context, teamID string, gameweekNumber, delta int) error {
	return r.withLockedTeam(ctx, teamID, func(tx *sqlx.Tx, t team.Team) error {
		t.TotalPoints += delta
		upsertScore(&t, gameweekNumber, func(points int) int { return points + delta })
		return writeTeamPoints(ctx, tx, t)
	})
}

func (r *TeamRepository) SetGameweekPoints(ctx context.Context, teamID string, gameweekNumber, points int) error {
	return r.withLockedTeam(ctx, teamID, func(tx *sqlx.Tx, t team.Team) error {
		upsertScore(&t, gameweekNumber, func(int) int { return points })
		total := 0
		for _, score := range t.GameweekPoints {
			total += score.Points
		}
		t.TotalPoints = total
		return writeTeamPoints(ctx, tx, t)
	})
}

func (r *TeamRepository) ReplaceRosterSlots(ctx context.Context, teamID string, removePlayerIDs []string, add []team.RosterSlot, newBudget int64, expectedVersion int64) (team.Team, error) {
	var committed team.Team
	err := r.withLockedTeam(ctx, teamID, func(tx *sqlx.Tx, t team.Team) error {
		if t.Version != expectedVersion {
			return fmt.Errorf("%w: expected version %d, stored %d", team.ErrVersionConflict, expectedVersion, t.Version)
		}

		removeSet := make(map[string]struct{}, len(removePlayerIDs))
		for _, playerID := range removePlayerIDs {
			removeSet[playerID] = struct{}{}
		}

		roster := make([]team.RosterSlot, 0, len(t.Roster))
		for _, slot := range t.Roster {
			if _, gone := removeSet[slot.PlayerID]; gone {
				continue
			}
			roster = append(roster, slot)
		}
		roster = append(roster, add...)

		t.Roster = roster
		t.Budget = newBudget
		t.Version++
		t.UpdatedAt = time.Now().UTC()

		encoded, err := encodeRoster(t.Roster)
		if err != nil {
			return err
		}

		const query = `
UPDATE teams
SET roster = $1, budget = $2, version = $3, updated_at = $4
WHERE id = $5`
		if _, err := tx.ExecContext(ctx, query, encoded, t.Budget, t.Version, t.UpdatedAt, t.ID); err != nil {
			return fmt.Errorf("replace roster slots: %w", err)
		}

		committed = t
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}
	return committed, nil
}

// withLockedTeam runs fn against the team row under FOR UPDATE and commits
// when fn succeeds.
func (r *TeamRepository) withLockedTeam(ctx context.Context, teamID string, fn func(tx *sqlx.Tx, t team.Team) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team write: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
SELECT id, owner_user_id, name, roster, budget, total_points, gameweek_points, version, created_at, updated_at
FROM teams
WHERE id = $1
FOR UPDATE`

	var row teamRow
	if err := tx.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("team %s not found", teamID)
		}
		return fmt.Errorf("lock team: %w", err)
	}

	t, err := row.toDomain()
	if err != nil {
		return err
	}

	if err := fn(tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team write: %w", err)
	}
	return nil
}

func upsertScore(t *team.Team, gameweekNumber int, apply func(points int) int) {
	for i, score := range t.GameweekPoints {
		if score.Gameweek == gameweekNumber {
			t.GameweekPoints[i].Points = apply(score.Points)
			return
		}
	}
	t.GameweekPoints = append(t.GameweekPoints, team.GameweekScore{
		Gameweek: gameweekNumber,
		Points:   apply(0),
	})
	sort.Slice(t.GameweekPoints, func(i, j int) bool {
		return t.GameweekPoints[i].Gameweek < t.GameweekPoints[j].Gameweek
	})
}

func writeTeamPoints(ctx context.Context, tx *sqlx.Tx, t team.Team) error {
	encoded, err := encodeGameweekScores(t.GameweekPoints)
	if err != nil {
		return err
	}

	const query = `
UPDATE teams
SET total_points = $1, gameweek_points = $2, updated_at = $3
WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, t.TotalPoints, encoded, time.Now().UTC(), t.ID); err != nil {
		return fmt.Errorf("update team points: %w", err)
	}
	return nil
}

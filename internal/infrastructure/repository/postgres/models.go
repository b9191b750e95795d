package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
)

type playerRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Club        string `db:"club"`
	County      string `db:"county"`
	Position    string `db:"position"`
	Price       int64  `db:"price"`
	Status      string `db:"status"`
	TotalPoints int    `db:"total_points"`
}

func (r playerRow) toDomain() player.Player {
	return player.Player{
		ID:          r.ID,
		Name:        r.Name,
		Club:        r.Club,
		County:      r.County,
		Position:    player.Position(r.Position),
		Price:       r.Price,
		Status:      player.Status(r.Status),
		TotalPoints: r.TotalPoints,
	}
}

// performanceDocument is the JSONB shape of one stat line inside
// matches.performances.
type performanceDocument struct {
	PlayerID      string `json:"player_id"`
	Goals         int    `json:"goals"`
	Points        int    `json:"points"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
	Saves         int    `json:"saves"`
	PenaltySaves  int    `json:"penalty_saves"`
	Hooks         int    `json:"hooks"`
	Blocks        int    `json:"blocks"`
	TotalPoints   int    `json:"total_points"`
}

func performanceToDocument(perf match.PlayerPerformance) performanceDocument {
	return performanceDocument(perf)
}

func (d performanceDocument) toDomain() match.PlayerPerformance {
	return match.PlayerPerformance(d)
}

type matchRow struct {
	ID             string `db:"id"`
	GameweekNumber int    `db:"gameweek_number"`
	HomeTeam       string `db:"home_team"`
	AwayTeam       string `db:"away_team"`
	HomeScore      string `db:"home_score"`
	AwayScore      string `db:"away_score"`
	Performances   []byte `db:"performances"`
}

func (r matchRow) toDomain() (match.Match, error) {
	var docs []performanceDocument
	if len(r.Performances) > 0 {
		if err := sonic.Unmarshal(r.Performances, &docs); err != nil {
			return match.Match{}, fmt.Errorf("decode performances for match %s: %w", r.ID, err)
		}
	}
	performances := make([]match.PlayerPerformance, 0, len(docs))
	for _, doc := range docs {
		performances = append(performances, doc.toDomain())
	}
	return match.Match{
		ID:             r.ID,
		GameweekNumber: r.GameweekNumber,
		HomeTeam:       r.HomeTeam,
		AwayTeam:       r.AwayTeam,
		HomeScore:      r.HomeScore,
		AwayScore:      r.AwayScore,
		Performances:   performances,
	}, nil
}

func encodePerformances(performances []match.PlayerPerformance) ([]byte, error) {
	docs := make([]performanceDocument, 0, len(performances))
	for _, perf := range performances {
		docs = append(docs, performanceToDocument(perf))
	}
	encoded, err := sonic.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode performances: %w", err)
	}
	return encoded, nil
}

// rosterSlotDocument is the JSONB shape of one slot inside teams.roster.
type rosterSlotDocument struct {
	PlayerID      string `json:"player_id"`
	Position      string `json:"position"`
	County        string `json:"county"`
	Price         int64  `json:"price"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
	IsSub         bool   `json:"is_sub"`
}

type gameweekScoreDocument struct {
	Gameweek int `json:"gameweek"`
	Points   int `json:"points"`
}

type teamRow struct {
	ID             string    `db:"id"`
	OwnerUserID    string    `db:"owner_user_id"`
	Name           string    `db:"name"`
	Roster         []byte    `db:"roster"`
	Budget         int64     `db:"budget"`
	TotalPoints    int       `db:"total_points"`
	GameweekPoints []byte    `db:"gameweek_points"`
	Version        int64     `db:"version"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r teamRow) toDomain() (team.Team, error) {
	var slotDocs []rosterSlotDocument
	if len(r.Roster) > 0 {
		if err := sonic.Unmarshal(r.Roster, &slotDocs); err != nil {
			return team.Team{}, fmt.Errorf("decode roster for team %s: %w", r.ID, err)
		}
	}
	roster := make([]team.RosterSlot, 0, len(slotDocs))
	for _, doc := range slotDocs {
		roster = append(roster, team.RosterSlot{
			PlayerID:      doc.PlayerID,
			Position:      doc.Position,
			County:        doc.County,
			Price:         doc.Price,
			IsCaptain:     doc.IsCaptain,
			IsViceCaptain: doc.IsViceCaptain,
			IsSub:         doc.IsSub,
		})
	}

	var scoreDocs []gameweekScoreDocument
	if len(r.GameweekPoints) > 0 {
		if err := sonic.Unmarshal(r.GameweekPoints, &scoreDocs); err != nil {
			return team.Team{}, fmt.Errorf("decode gameweek points for team %s: %w", r.ID, err)
		}
	}
	scores := make([]team.GameweekScore, 0, len(scoreDocs))
	for _, doc := range scoreDocs {
		scores = append(scores, team.GameweekScore{Gameweek: doc.Gameweek, Points: doc.Points})
	}

	return team.Team{
		ID:             r.ID,
		OwnerUserID:    r.OwnerUserID,
		Name:           r.Name,
		Roster:         roster,
		Budget:         r.Budget,
		TotalPoints:    r.TotalPoints,
		GameweekPoints: scores,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func encodeRoster(roster []team.RosterSlot) ([]byte, error) {
	docs := make([]rosterSlotDocument, 0, len(roster))
	for _, slot := range roster {
		docs = append(docs, rosterSlotDocument{
			PlayerID:      slot.PlayerID,
			Position:      slot.Position,
			County:        slot.County,
			Price:         slot.Price,
			IsCaptain:     slot.IsCaptain,
			IsViceCaptain: slot.IsViceCaptain,
			IsSub:         slot.IsSub,
		})
	}
	encoded, err := sonic.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	return encoded, nil
}

func encodeGameweekScores(scores []team.GameweekScore) ([]byte, error) {
	docs := make([]gameweekScoreDocument, 0, len(scores))
	for _, score := range scores {
		docs = append(docs, gameweekScoreDocument{Gameweek: score.Gameweek, Points: score.Points})
	}
	encoded, err := sonic.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode gameweek points: %w", err)
	}
	return encoded, nil
}

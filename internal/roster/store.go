package roster

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sriSAKTH1/IPL-MOCK-AUCTION/internal/engine"
)

// Store loads the roster from Postgres. It is a read-only feed: auction
// outcomes are never written back.
type Store struct {
	db *gorm.DB
}

type teamRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	ShortName string
	Purse     int64
}

func (teamRow) TableName() string { return "teams" }

type playerRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	Role       string
	Overseas   bool
	BasePrice  int64
	AuctionSet string
	Matches    int
	Runs       int
	Wickets    int
	StrikeRate float64
	Economy    float64
}

func (playerRow) TableName() string { return "players" }

type rulesRow struct {
	ID              int `gorm:"primaryKey"`
	MaxOverseas     int
	MaxSquadSize    int
	MinBidIncrement int64
}

func (rulesRow) TableName() string { return "auction_rules" }

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening roster database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (Roster, error) {
	var teamRows []teamRow
	if err := s.db.WithContext(ctx).Order("id").Find(&teamRows).Error; err != nil {
		return Roster{}, fmt.Errorf("loading teams: %w", err)
	}
	var playerRows []playerRow
	if err := s.db.WithContext(ctx).Order("id").Find(&playerRows).Error; err != nil {
		return Roster{}, fmt.Errorf("loading players: %w", err)
	}

	rules := DefaultRules()
	var rr rulesRow
	switch err := s.db.WithContext(ctx).First(&rr).Error; {
	case err == nil:
		rules = engine.Rules{
			MaxOverseas:     rr.MaxOverseas,
			MaxSquadSize:    rr.MaxSquadSize,
			MinBidIncrement: rr.MinBidIncrement,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No rules row configured; the defaults apply.
	default:
		return Roster{}, fmt.Errorf("loading rules: %w", err)
	}

	teams := make([]engine.Team, 0, len(teamRows))
	for _, t := range teamRows {
		purse := t.Purse
		if purse == 0 {
			purse = TotalPurse
		}
		teams = append(teams, engine.Team{
			ID:             t.ID,
			Name:           t.Name,
			ShortName:      t.ShortName,
			PurseRemaining: purse,
			Players:        []string{},
		})
	}

	players := make([]engine.Player, 0, len(playerRows))
	for _, p := range playerRows {
		players = append(players, engine.Player{
			ID:         p.ID,
			Name:       p.Name,
			Role:       engine.Role(p.Role),
			IsOverseas: p.Overseas,
			BasePrice:  p.BasePrice,
			Set:        p.AuctionSet,
			Status:     engine.StatusUpcoming,
			Stats: engine.Stats{
				Matches:    p.Matches,
				Runs:       p.Runs,
				Wickets:    p.Wickets,
				StrikeRate: p.StrikeRate,
				Economy:    p.Economy,
			},
		})
	}

	return Roster{Teams: teams, Players: players, Rules: rules}, nil
}

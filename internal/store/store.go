// Package store keeps a record of finished games in Postgres. It is an
// optional extra: the server runs fine without a database configured.
package store

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sugolab/probwalk/internal/engine"
)

type GameRecord struct {
	ID         string `gorm:"primaryKey"`
	Winner     string
	Players    string // comma-joined display names
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
}

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveResult(g *engine.Game) error {
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name
	}
	rec := GameRecord{
		ID:         g.ID,
		Winner:     g.Winner,
		Players:    strings.Join(names, ","),
		Turns:      g.TurnsTaken(),
		StartedAt:  g.StartedAt,
		FinishedAt: time.Now(),
	}
	return s.db.Create(&rec).Error
}

package entity

import "time"

// MatchRecord is the archived form of a finished match.
type MatchRecord struct {
	ID         string         `json:"id"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Winner     int            `json:"winner"`
	Reason     string         `json:"reason"`
	FinishedAt time.Time      `json:"finished_at"`
	Players    []PlayerRecord `json:"players"`
}

type PlayerRecord struct {
	Num            int    `json:"num"`
	Ready          bool   `json:"ready"`
	ShipsRemaining int    `json:"ships_remaining"`
	Shots          []Shot `json:"shots"`
}

func NewMatchRecord(match *Match, finishedAt time.Time) *MatchRecord {
	record := &MatchRecord{
		ID:         match.ID,
		Width:      match.Width,
		Height:     match.Height,
		Winner:     match.Winner,
		Reason:     match.Reason,
		FinishedAt: finishedAt.UTC(),
		Players:    make([]PlayerRecord, 0, len(match.Players)),
	}

	for _, player := range match.Players {
		remaining, shots := player.History()
		record.Players = append(record.Players, PlayerRecord{
			Num:            player.Num,
			Ready:          player.Ready,
			ShipsRemaining: remaining,
			Shots:          shots,
		})
	}

	return record
}

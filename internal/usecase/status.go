package usecase

import "github.com/rocketscienceinc/battleship-backend/internal/entity"

// Status is a read-only snapshot of the match, safe to share between goroutines.
type Status struct {
	MatchID string         `json:"match_id"`
	Status  string         `json:"status"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Turn    int            `json:"turn,omitempty"`
	Winner  int            `json:"winner,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Players []PlayerStatus `json:"players"`
}

type PlayerStatus struct {
	Num            int  `json:"num"`
	Ready          bool `json:"ready"`
	ShipsRemaining int  `json:"ships_remaining"`
	ShotsFired     int  `json:"shots_fired"`
}

func newStatus(match *entity.Match) Status {
	status := Status{
		MatchID: match.ID,
		Status:  match.Status,
		Width:   match.Width,
		Height:  match.Height,
		Turn:    match.Turn,
		Winner:  match.Winner,
		Reason:  match.Reason,
		Players: make([]PlayerStatus, 0, len(match.Players)),
	}

	for _, player := range match.Players {
		status.Players = append(status.Players, PlayerStatus{
			Num:            player.Num,
			Ready:          player.Ready,
			ShipsRemaining: player.ShipsRemaining,
			ShotsFired:     player.Ledger.Len(),
		})
	}

	return status
}

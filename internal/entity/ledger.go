package entity

type Shot struct {
	X   int  `json:"x"`
	Y   int  `json:"y"`
	Hit bool `json:"hit"`
}

// Ledger is the ordered record of shots fired by one player.
type Ledger struct {
	shots []Shot
}

// Attacked - reports whether the cell was already fired at.
func (that *Ledger) Attacked(x, y int) bool {
	for _, shot := range that.shots {
		if shot.X == x && shot.Y == y {
			return true
		}
	}

	return false
}

func (that *Ledger) Append(shot Shot) {
	that.shots = append(that.shots, shot)
}

func (that *Ledger) Len() int {
	return len(that.shots)
}

// Shots - returns a copy of the ledger in firing order.
func (that *Ledger) Shots() []Shot {
	shots := make([]Shot, len(that.shots))
	copy(shots, that.shots)

	return shots
}

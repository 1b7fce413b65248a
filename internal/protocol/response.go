package protocol

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	Win  = "H 1"
	Loss = "H 0"
)

func Error(code int) string {
	return "E " + strconv.Itoa(code)
}

// ShotResult - `<remaining> H` or `<remaining> M`.
func ShotResult(remaining int, hit bool) string {
	return strconv.Itoa(remaining) + " " + mark(hit)
}

// History - `G <remaining>` followed by ` <H|M> <x> <y>` per shot in firing order.
func History(remaining int, shots []entity.Shot) string {
	var sb strings.Builder

	sb.WriteString("G ")
	sb.WriteString(strconv.Itoa(remaining))

	for _, shot := range shots {
		sb.WriteString(" ")
		sb.WriteString(mark(shot.Hit))
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(shot.X))
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(shot.Y))
	}

	return sb.String()
}

func mark(hit bool) string {
	if hit {
		return "H"
	}
	return "M"
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	FootprintSize = 4
	PieceTypes    = 7
	Rotations     = 4
)

// Footprint is the occupancy of a piece inside a 4x4 window. The first index offsets x,
// the second offsets y.
type Footprint [FootprintSize][FootprintSize]bool

type PieceShape struct {
	Name   string
	Width  int
	Height int
	Cells  Footprint
}

// PieceSpec is one entry of a fleet: piece type, rotation and placement origin.
type PieceSpec struct {
	Type     int
	Rotation int
	X        int
	Y        int
}

var catalog = [PieceTypes]PieceShape{
	{Name: "square", Width: 2, Height: 2, Cells: Footprint{
		{true, true, false, false},
		{true, true, false, false},
	}},
	{Name: "bar", Width: 4, Height: 1, Cells: Footprint{
		{true, true, true, true},
	}},
	{Name: "s", Width: 3, Height: 2, Cells: Footprint{
		{false, true, true, false},
		{true, true, false, false},
	}},
	{Name: "l", Width: 2, Height: 3, Cells: Footprint{
		{true, false, false, false},
		{true, false, false, false},
		{true, true, false, false},
	}},
	{Name: "z", Width: 3, Height: 2, Cells: Footprint{
		{true, true, false, false},
		{false, true, true, false},
	}},
	{Name: "j", Width: 2, Height: 3, Cells: Footprint{
		{false, true, false, false},
		{false, true, false, false},
		{true, true, false, false},
	}},
	{Name: "t", Width: 3, Height: 2, Cells: Footprint{
		{true, true, true, false},
		{false, true, false, false},
	}},
}

// ShapeOf - returns the catalog entry for a piece type.
func ShapeOf(pieceType int) (PieceShape, error) {
	if pieceType < 0 || pieceType >= PieceTypes {
		return PieceShape{}, fmt.Errorf("%w: %d", apperror.ErrBadPieceType, pieceType)
	}

	return catalog[pieceType], nil
}

// Rotate - turns the footprint 90 degrees clockwise k times, cell (i,j) moves to (j,3-i).
// The result is not shifted back to the window origin.
func Rotate(footprint Footprint, k int) Footprint {
	for range k % Rotations {
		var turned Footprint
		for i := range FootprintSize {
			for j := range FootprintSize {
				turned[j][FootprintSize-1-i] = footprint[i][j]
			}
		}
		footprint = turned
	}

	return footprint
}

// Instantiate - returns the rotated footprint of a piece type.
func Instantiate(pieceType, rotation int) (Footprint, error) {
	shape, err := ShapeOf(pieceType)
	if err != nil {
		return Footprint{}, err
	}

	if rotation < 0 || rotation >= Rotations {
		return Footprint{}, fmt.Errorf("%w: %d", apperror.ErrBadRotation, rotation)
	}

	return Rotate(shape.Cells, rotation), nil
}

// Count - returns the number of occupied cells.
func (that Footprint) Count() int {
	count := 0
	for i := range FootprintSize {
		for j := range FootprintSize {
			if that[i][j] {
				count++
			}
		}
	}

	return count
}

package seatmap

import "busbilet-cli/model"

// SeatState is how a seat is shown and what interacting with it does.
type SeatState int

const (
	// StateAvailable seats open the gender prompt.
	StateAvailable SeatState = iota
	// StateSelected seats are deselected on interaction.
	StateSelected
	// StateOccupied seats are fixed and coloured by occupant gender.
	StateOccupied
)

func (s SeatState) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateOccupied:
		return "occupied"
	default:
		return "available"
	}
}

// Classify derives the state of seat from the selection.
func Classify(seat model.Seat, picks []Pick) SeatState {
	if indexOf(picks, seat.Id) >= 0 {
		return StateSelected
	}
	if seat.Occupied() {
		return StateOccupied
	}
	return StateAvailable
}

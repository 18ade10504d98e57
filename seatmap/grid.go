package seatmap

import (
	"sort"

	"busbilet-cli/model"
)

// Row is one row of the bus with its seats ordered by column.
type Row struct {
	Number int
	Seats  []model.Seat
}

// Rows groups the layout into rows ordered front to back.
func (m *Map) Rows() []Row {
	byRow := map[int][]model.Seat{}
	for _, seat := range m.seats {
		byRow[seat.Row] = append(byRow[seat.Row], seat)
	}
	numbers := make([]int, 0, len(byRow))
	for n := range byRow {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rows := make([]Row, 0, len(numbers))
	for _, n := range numbers {
		seats := byRow[n]
		sort.Slice(seats, func(i, j int) bool { return seats[i].Col < seats[j].Col })
		rows = append(rows, Row{Number: n, Seats: seats})
	}
	return rows
}

// Columns returns the highest column number in the layout.
func (m *Map) Columns() int {
	cols := 0
	for _, seat := range m.seats {
		cols = max(cols, seat.Col)
	}
	return cols
}

// SeatAt finds the seat at (row, col).
func (m *Map) SeatAt(row int, col int) (model.Seat, bool) {
	for _, seat := range m.seats {
		if seat.Row == row && seat.Col == col {
			return seat, true
		}
	}
	return model.Seat{}, false
}

// Package seatmap holds the seat selection for one journey and enforces the
// booking rules: at most four seats, and no passenger of the opposite gender
// directly beside an occupied seat on the same side of the aisle.
package seatmap

import (
	"fmt"

	"busbilet-cli/model"
)

// MaxSeats is the largest selection a single purchase may carry.
const MaxSeats = 4

type Gender int

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = model.GenderMale
	GenderFemale  Gender = model.GenderFemale
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender accepts the wire codes and the usual spellings.
func ParseGender(value string) (Gender, error) {
	switch value {
	case "1", "m", "M", "male", "Male", "erkek", "Erkek":
		return GenderMale, nil
	case "2", "f", "F", "female", "Female", "kadin", "Kadin", "kadın", "Kadın":
		return GenderFemale, nil
	default:
		return GenderUnknown, fmt.Errorf("invalid gender %q", value)
	}
}

// Pick is one selected seat and the gender declared for it.
type Pick struct {
	SeatID int
	Gender Gender
}

// Map is the seat layout of one journey plus the in-progress selection.
// It is not safe for concurrent use; the owning view serialises access.
type Map struct {
	journeyID int
	seats     []model.Seat
	byID      map[int]int
	picks     []Pick
	warning   string
}

func New(journeyID int, seats []model.Seat) *Map {
	m := &Map{
		journeyID: journeyID,
		seats:     append([]model.Seat(nil), seats...),
		byID:      make(map[int]int, len(seats)),
	}
	for i, seat := range m.seats {
		m.byID[seat.Id] = i
	}
	return m
}

func (m *Map) JourneyID() int {
	return m.journeyID
}

func (m *Map) Seats() []model.Seat {
	return m.seats
}

// Seat returns the seat with the given id.
func (m *Map) Seat(id int) (model.Seat, bool) {
	i, ok := m.byID[id]
	if !ok {
		return model.Seat{}, false
	}
	return m.seats[i], true
}

// Picks returns a copy of the selection in the order it was made.
func (m *Map) Picks() []Pick {
	return append([]Pick(nil), m.picks...)
}

func (m *Map) Len() int {
	return len(m.picks)
}

// Warning is the message of the last rejected selection, or "" once a
// selection or deselection succeeds.
func (m *Map) Warning() string {
	return m.warning
}

func (m *Map) IsSelected(seatID int) bool {
	return indexOf(m.picks, seatID) >= 0
}

// Select runs the selection rules for seatID and appends it when they pass.
// A rejected outcome leaves the selection untouched.
func (m *Map) Select(seatID int, gender Gender) Outcome {
	outcome := m.check(seatID, gender)
	if !outcome.Accepted() {
		m.warning = outcome.Message
		return outcome
	}
	m.picks = append(m.picks, Pick{SeatID: seatID, Gender: gender})
	m.warning = ""
	return outcome
}

func (m *Map) check(seatID int, gender Gender) Outcome {
	if len(m.picks) >= MaxSeats {
		return reject(CapacityExceeded)
	}
	seat, ok := m.Seat(seatID)
	if !ok {
		return reject(UnknownSeat)
	}
	if seat.Occupied() {
		return reject(SeatUnavailable)
	}
	if m.IsSelected(seatID) {
		return reject(AlreadySelected)
	}
	if !gender.Valid() {
		return reject(InvalidGender)
	}
	for _, neighbor := range m.Neighbors(seat) {
		if !neighbor.Occupied() {
			continue
		}
		occupant := Gender(neighbor.Gender)
		if !occupant.Valid() || occupant == gender {
			continue
		}
		if occupant == GenderMale {
			return reject(GenderConflictBesideMale)
		}
		return reject(GenderConflictBesideFemale)
	}
	return Outcome{}
}

// Deselect drops seatID from the selection. Unknown ids are ignored.
func (m *Map) Deselect(seatID int) {
	if i := indexOf(m.picks, seatID); i >= 0 {
		m.picks = append(m.picks[:i], m.picks[i+1:]...)
	}
	m.warning = ""
}

// Reset empties the selection, as after a successful purchase.
func (m *Map) Reset() {
	m.picks = nil
	m.warning = ""
}

// Neighbors returns the seats sharing an armrest with seat: same row, one
// column away, same side of the aisle.
func (m *Map) Neighbors(seat model.Seat) []model.Seat {
	var out []model.Seat
	for _, other := range m.seats {
		if other.Row != seat.Row || other.Id == seat.Id {
			continue
		}
		diff := other.Col - seat.Col
		if diff != 1 && diff != -1 {
			continue
		}
		if other.LeftOfAisle() != seat.LeftOfAisle() {
			continue
		}
		out = append(out, other)
	}
	return out
}

func (m *Map) Total() float64 {
	return TotalPrice(m.picks, m.seats)
}

func (m *Map) SeatIDs() []int {
	ids := make([]int, 0, len(m.picks))
	for _, pick := range m.picks {
		ids = append(ids, pick.SeatID)
	}
	return ids
}

// CheckoutGender is the gender sent with a purchase: the one declared for
// the first selected seat.
func (m *Map) CheckoutGender() Gender {
	if len(m.picks) == 0 {
		return GenderUnknown
	}
	return m.picks[0].Gender
}

// State classifies one seat of this map against the current selection.
func (m *Map) State(seat model.Seat) SeatState {
	return Classify(seat, m.picks)
}

// TotalPrice sums the price of every selected seat found in seats.
func TotalPrice(picks []Pick, seats []model.Seat) float64 {
	var total float64
	for _, pick := range picks {
		for _, seat := range seats {
			if seat.Id == pick.SeatID {
				total += seat.Price
				break
			}
		}
	}
	return total
}

func indexOf(picks []Pick, seatID int) int {
	for i, pick := range picks {
		if pick.SeatID == seatID {
			return i
		}
	}
	return -1
}

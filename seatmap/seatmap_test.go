package seatmap

import (
	"testing"

	"busbilet-cli/model"
)

func seat(id, row, col int, price float64) model.Seat {
	return model.Seat{Id: id, No: id, Row: row, Col: col, Price: price}
}

func occupied(id, row, col int, gender int) model.Seat {
	return model.Seat{Id: id, No: id, Row: row, Col: col, Status: model.SeatStatusOccupied, Gender: gender, Price: 100}
}

// fourRows is a 2+2 layout with four rows of free seats priced 100.
func fourRows() []model.Seat {
	var seats []model.Seat
	id := 1
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			seats = append(seats, seat(id, row, col, 100))
			id++
		}
	}
	return seats
}

func TestSelect_CapacityExceeded(t *testing.T) {
	m := New(1, fourRows())
	for _, id := range []int{1, 2, 3, 4} {
		if out := m.Select(id, GenderMale); !out.Accepted() {
			t.Fatalf("expected seat %d accepted, got %s", id, out.Kind)
		}
	}

	before := m.Picks()
	out := m.Select(5, GenderMale)
	if out.Kind != CapacityExceeded {
		t.Fatalf("expected capacity exceeded, got %s", out.Kind)
	}
	if out.Message == "" || m.Warning() != out.Message {
		t.Fatalf("expected warning to carry the rejection, got %q", m.Warning())
	}
	after := m.Picks()
	if len(after) != len(before) {
		t.Fatalf("expected selection unchanged, got %+v", after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected selection unchanged, got %+v", after)
		}
	}
}

func TestSelect_CapacityCheckedBeforeSeatLookup(t *testing.T) {
	m := New(1, fourRows())
	for _, id := range []int{1, 5, 9, 13} {
		m.Select(id, GenderFemale)
	}
	out := m.Select(99, GenderFemale)
	if out.Kind != CapacityExceeded {
		t.Fatalf("expected capacity exceeded for seat 99, got %s", out.Kind)
	}
	if m.Len() != MaxSeats {
		t.Fatalf("expected %d seats, got %d", MaxSeats, m.Len())
	}
}

func TestSelect_GenderConflictSameSide(t *testing.T) {
	cases := []struct {
		name     string
		occupant int
		request  Gender
		want     Rejection
	}{
		{"female beside male", model.GenderMale, GenderFemale, GenderConflictBesideMale},
		{"male beside female", model.GenderFemale, GenderMale, GenderConflictBesideFemale},
		{"male beside male", model.GenderMale, GenderMale, Accepted},
		{"female beside female", model.GenderFemale, GenderFemale, Accepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, pair := range [][2]int{{1, 2}, {2, 1}, {3, 4}, {4, 3}} {
				seats := []model.Seat{
					occupied(10, 1, pair[0], tc.occupant),
					seat(11, 1, pair[1], 100),
				}
				m := New(1, seats)
				out := m.Select(11, tc.request)
				if out.Kind != tc.want {
					t.Fatalf("cols %v: expected %s, got %s", pair, tc.want, out.Kind)
				}
				if tc.want.IsGenderConflict() && m.Len() != 0 {
					t.Fatalf("cols %v: expected no selection, got %+v", pair, m.Picks())
				}
			}
		})
	}
}

func TestSelect_AcrossAisleNeverConflicts(t *testing.T) {
	for _, pair := range [][2]int{{2, 3}, {3, 2}} {
		for _, occupant := range []int{model.GenderMale, model.GenderFemale} {
			for _, request := range []Gender{GenderMale, GenderFemale} {
				m := New(1, []model.Seat{
					occupied(10, 1, pair[0], occupant),
					seat(11, 1, pair[1], 100),
				})
				if out := m.Select(11, request); !out.Accepted() {
					t.Fatalf("cols %v occupant %d request %s: expected accepted, got %s", pair, occupant, request, out.Kind)
				}
			}
		}
	}
}

func TestSelect_OtherRowsIgnored(t *testing.T) {
	m := New(1, []model.Seat{
		occupied(10, 2, 1, model.GenderMale),
		seat(11, 1, 1, 100),
		seat(12, 1, 2, 100),
	})
	if out := m.Select(12, GenderFemale); !out.Accepted() {
		t.Fatalf("expected accepted, got %s", out.Kind)
	}
}

func TestSelect_UnknownOccupantGenderIgnored(t *testing.T) {
	m := New(1, []model.Seat{
		occupied(10, 1, 1, 0),
		seat(11, 1, 2, 100),
	})
	if out := m.Select(11, GenderMale); !out.Accepted() {
		t.Fatalf("expected accepted, got %s", out.Kind)
	}
}

func TestSelect_Preconditions(t *testing.T) {
	m := New(1, []model.Seat{
		occupied(10, 1, 1, model.GenderMale),
		seat(11, 1, 3, 100),
	})
	if out := m.Select(42, GenderMale); out.Kind != UnknownSeat {
		t.Fatalf("expected unknown seat, got %s", out.Kind)
	}
	if out := m.Select(10, GenderMale); out.Kind != SeatUnavailable {
		t.Fatalf("expected seat unavailable, got %s", out.Kind)
	}
	if out := m.Select(11, GenderUnknown); out.Kind != InvalidGender {
		t.Fatalf("expected invalid gender, got %s", out.Kind)
	}
	if out := m.Select(11, GenderMale); !out.Accepted() {
		t.Fatalf("expected accepted, got %s", out.Kind)
	}
	if out := m.Select(11, GenderMale); out.Kind != AlreadySelected {
		t.Fatalf("expected already selected, got %s", out.Kind)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 seat selected, got %d", m.Len())
	}
}

func TestSelect_SuccessClearsWarning(t *testing.T) {
	m := New(1, []model.Seat{
		occupied(10, 1, 1, model.GenderFemale),
		seat(11, 1, 2, 100),
		seat(12, 1, 3, 100),
	})
	m.Select(11, GenderMale)
	if m.Warning() == "" {
		t.Fatal("expected warning after conflict")
	}
	m.Select(12, GenderMale)
	if m.Warning() != "" {
		t.Fatalf("expected warning cleared, got %q", m.Warning())
	}
}

func TestDeselect_AbsentIsNoop(t *testing.T) {
	m := New(1, fourRows())
	m.Select(1, GenderMale)
	m.Select(99, GenderMale)

	m.Deselect(7)
	if m.Len() != 1 {
		t.Fatalf("expected selection unchanged, got %+v", m.Picks())
	}
	if m.Warning() != "" {
		t.Fatalf("expected warning cleared, got %q", m.Warning())
	}

	m.Deselect(1)
	m.Deselect(1)
	if m.Len() != 0 {
		t.Fatalf("expected empty selection, got %+v", m.Picks())
	}
}

func TestTotalPrice(t *testing.T) {
	seats := []model.Seat{
		seat(1, 1, 1, 100),
		seat(2, 1, 2, 120.5),
		seat(3, 1, 3, 80),
	}
	m := New(1, seats)
	m.Select(1, GenderMale)
	m.Select(2, GenderMale)
	m.Select(3, GenderFemale)
	if got := m.Total(); got != 300.5 {
		t.Fatalf("expected total 300.5, got %v", got)
	}

	m.Deselect(2)
	if got := m.Total(); got != 180 {
		t.Fatalf("expected total 180 after deselect, got %v", got)
	}

	missing := []Pick{{SeatID: 1, Gender: GenderMale}, {SeatID: 77, Gender: GenderMale}}
	if got := TotalPrice(missing, seats); got != 100 {
		t.Fatalf("expected missing seats to contribute 0, got %v", got)
	}
}

func TestExample_FemaleOccupiedRowOne(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, Row: 1, Col: 1, Status: model.SeatStatusOccupied, Gender: model.GenderFemale, Price: 100},
		{Id: 2, Row: 1, Col: 2, Status: 1, Price: 100},
	}

	m := New(1, seats)
	if out := m.Select(2, GenderMale); !out.Kind.IsGenderConflict() {
		t.Fatalf("expected gender conflict, got %s", out.Kind)
	}
	if out := m.Select(2, GenderFemale); !out.Accepted() {
		t.Fatalf("expected accepted, got %s", out.Kind)
	}
	if got := m.Total(); got != 100 {
		t.Fatalf("expected total 100, got %v", got)
	}
}

func TestCheckoutFields(t *testing.T) {
	m := New(3, fourRows())
	if m.CheckoutGender() != GenderUnknown {
		t.Fatalf("expected unknown gender for empty selection, got %s", m.CheckoutGender())
	}
	m.Select(6, GenderFemale)
	m.Select(2, GenderMale)
	if m.CheckoutGender() != GenderFemale {
		t.Fatalf("expected first pick gender, got %s", m.CheckoutGender())
	}
	ids := m.SeatIDs()
	if len(ids) != 2 || ids[0] != 6 || ids[1] != 2 {
		t.Fatalf("unexpected seat ids: %v", ids)
	}
	m.Reset()
	if m.Len() != 0 || m.Total() != 0 {
		t.Fatalf("expected empty selection after reset, got %+v", m.Picks())
	}
}

func TestParseGender(t *testing.T) {
	for _, value := range []string{"1", "m", "male", "Erkek"} {
		if g, err := ParseGender(value); err != nil || g != GenderMale {
			t.Fatalf("%q: expected male, got %s (%v)", value, g, err)
		}
	}
	for _, value := range []string{"2", "f", "Female", "kadın"} {
		if g, err := ParseGender(value); err != nil || g != GenderFemale {
			t.Fatalf("%q: expected female, got %s (%v)", value, g, err)
		}
	}
	if _, err := ParseGender("x"); err == nil {
		t.Fatal("expected error for invalid gender")
	}
}

package booking

import (
	"testing"

	"busbilet-cli/model"
	"busbilet-cli/seatmap"
)

func validPassenger() Passenger {
	return Passenger{Name: " Ayse Yilmaz ", IdentityNumber: "111 111 111 11", CardNumber: "1111-2222-3333-4444"}
}

func TestPassenger_Validate(t *testing.T) {
	if err := validPassenger().Normalize().Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := []Passenger{
		{Name: "", IdentityNumber: "11111111111", CardNumber: "1111222233334444"},
		{Name: "A", IdentityNumber: "1111111111", CardNumber: "1111222233334444"},
		{Name: "A", IdentityNumber: "1111111111a", CardNumber: "1111222233334444"},
		{Name: "A", IdentityNumber: "11111111111", CardNumber: "1234"},
	}
	for i, p := range cases {
		if err := p.Normalize().Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestCheckoutRequest(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, Row: 1, Col: 1, Price: 100},
		{Id: 2, Row: 1, Col: 2, Price: 100},
	}
	selection := seatmap.New(7, seats)

	if _, err := CheckoutRequest(selection, validPassenger()); err == nil {
		t.Fatal("expected error for empty selection")
	}

	selection.Select(2, seatmap.GenderFemale)
	selection.Select(1, seatmap.GenderMale)

	req, err := CheckoutRequest(selection, validPassenger())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if req.JourneyId != 7 || len(req.SeatIds) != 2 || req.SeatIds[0] != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Gender != model.GenderFemale {
		t.Fatalf("expected gender of first pick, got %d", req.Gender)
	}
	if req.PassengerName != "Ayse Yilmaz" || req.IdentityNumber != "11111111111" || req.CreditCardNumber != "1111222233334444" {
		t.Fatalf("expected normalized passenger fields, got %+v", req)
	}
}

func TestMaskCard(t *testing.T) {
	if got := MaskCard("1111222233334444"); got != "************4444" {
		t.Fatalf("unexpected mask: %s", got)
	}
	if got := MaskCard("123"); got != "123" {
		t.Fatalf("unexpected mask: %s", got)
	}
}

package booking

import (
	"errors"
	"fmt"
	"strings"

	"busbilet-cli/model"
	"busbilet-cli/seatmap"
)

const identityLength = 11

// Passenger is the buyer data sent with a purchase.
type Passenger struct {
	Name           string
	IdentityNumber string
	CardNumber     string
}

// Normalize trims the fields and strips spaces and dashes from the numbers.
func (p Passenger) Normalize() Passenger {
	return Passenger{
		Name:           strings.TrimSpace(p.Name),
		IdentityNumber: stripSeparators(p.IdentityNumber),
		CardNumber:     stripSeparators(p.CardNumber),
	}
}

// Validate checks a normalized passenger.
func (p Passenger) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidateIdentity(p.IdentityNumber); err != nil {
		return err
	}
	return ValidateCard(p.CardNumber)
}

func ValidateName(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("passenger name is required")
	}
	return nil
}

// ValidateIdentity accepts an 11-digit national identity number; spaces and
// dashes are ignored.
func ValidateIdentity(value string) error {
	v := stripSeparators(value)
	if len(v) != identityLength || !digitsOnly(v) {
		return fmt.Errorf("identity number must be %d digits", identityLength)
	}
	return nil
}

// ValidateCard accepts 12 to 19 digits; spaces and dashes are ignored.
func ValidateCard(value string) error {
	v := stripSeparators(value)
	if len(v) < 12 || len(v) > 19 || !digitsOnly(v) {
		return errors.New("card number must be 12 to 19 digits")
	}
	return nil
}

// CheckoutRequest builds the purchase payload for the current selection.
func CheckoutRequest(selection *seatmap.Map, passenger Passenger) (model.CheckoutRequest, error) {
	if selection == nil || selection.Len() == 0 {
		return model.CheckoutRequest{}, errors.New("select at least one seat")
	}
	p := passenger.Normalize()
	if err := p.Validate(); err != nil {
		return model.CheckoutRequest{}, err
	}
	return model.CheckoutRequest{
		JourneyId:        selection.JourneyID(),
		SeatIds:          selection.SeatIDs(),
		PassengerName:    p.Name,
		IdentityNumber:   p.IdentityNumber,
		Gender:           int(selection.CheckoutGender()),
		CreditCardNumber: p.CardNumber,
	}, nil
}

// MaskCard hides all but the last four digits.
func MaskCard(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

func stripSeparators(value string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))
}

func digitsOnly(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

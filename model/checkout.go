package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

type CheckoutRequest struct {
	JourneyId        int    `json:"journeyId"`
	SeatIds          []int  `json:"seatIds"`
	PassengerName    string `json:"passengerName"`
	IdentityNumber   string `json:"identityNumber"`
	Gender           int    `json:"gender"`
	CreditCardNumber string `json:"creditCardNumber"`
}

type TicketResult struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	PnrCode   string `json:"pnrCode"`
}

// TicketRecord is the ticket returned by a PNR lookup. Its shape is owned by
// the booking service, so it is kept as decoded JSON.
type TicketRecord map[string]any

// Keys returns the top-level field names in sorted order.
func (r TicketRecord) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Text renders one field for display. Nested values are shown as JSON.
func (r TicketRecord) Text(key string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(payload)
	}
}

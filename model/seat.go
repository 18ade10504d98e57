package model

// Seat status and gender codes used by the booking service.
const (
	SeatStatusOccupied = 2

	GenderMale   = 1
	GenderFemale = 2
)

type SeatLayout struct {
	Seats []Seat `json:"seats"`
}

type Seat struct {
	Id     int     `json:"id"`
	No     int     `json:"no"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Status int     `json:"status"`
	Gender int     `json:"gender"`
	Price  float64 `json:"price"`
}

// Occupied reports whether the seat is sold. Every status other than 2 is
// treated as available.
func (s Seat) Occupied() bool {
	return s.Status == SeatStatusOccupied
}

// LeftOfAisle reports whether the seat is in columns 1-2.
func (s Seat) LeftOfAisle() bool {
	return s.Col <= 2
}

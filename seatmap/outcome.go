package seatmap

// Rejection names why a selection was refused.
type Rejection int

const (
	Accepted Rejection = iota
	CapacityExceeded
	UnknownSeat
	SeatUnavailable
	AlreadySelected
	InvalidGender
	GenderConflictBesideMale
	GenderConflictBesideFemale
)

var rejectionMessages = map[Rejection]string{
	CapacityExceeded:           "You can select at most 4 seats.",
	UnknownSeat:                "That seat is not part of this journey.",
	SeatUnavailable:            "That seat is already sold.",
	AlreadySelected:            "That seat is already in your selection.",
	InvalidGender:              "Choose male or female for the seat.",
	GenderConflictBesideMale:   "A female passenger cannot sit next to a male passenger.",
	GenderConflictBesideFemale: "A male passenger cannot sit next to a female passenger.",
}

// IsGenderConflict reports both directions of the adjacency rule.
func (r Rejection) IsGenderConflict() bool {
	return r == GenderConflictBesideMale || r == GenderConflictBesideFemale
}

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case CapacityExceeded:
		return "capacity_exceeded"
	case UnknownSeat:
		return "unknown_seat"
	case SeatUnavailable:
		return "seat_unavailable"
	case AlreadySelected:
		return "already_selected"
	case InvalidGender:
		return "invalid_gender"
	case GenderConflictBesideMale, GenderConflictBesideFemale:
		return "gender_conflict"
	default:
		return "unknown"
	}
}

// Outcome is the result of a selection attempt. The zero value is an
// accepted selection.
type Outcome struct {
	Kind    Rejection
	Message string
}

func (o Outcome) Accepted() bool {
	return o.Kind == Accepted
}

func reject(kind Rejection) Outcome {
	return Outcome{Kind: kind, Message: rejectionMessages[kind]}
}

// Package booking carries the route, date and open journey that the views of
// the client share. A Session is a plain value: the owner passes it to each
// consumer rather than publishing it globally.
package booking

import (
	"errors"
	"time"
)

// Session is the search and seat-map context of one user.
type Session struct {
	FromID    int
	ToID      int
	Date      time.Time
	JourneyID int

	generation uint64
	search     uint64
}

// Ticket identifies one seat-map request. A response is only applied when
// its ticket is still current.
type Ticket struct {
	JourneyID  int
	Generation uint64
}

func New(now time.Time) Session {
	return Session{Date: truncateDate(now)}
}

// SetRoute records origin and destination; they must differ.
func (s *Session) SetRoute(fromID int, toID int) error {
	if fromID <= 0 || toID <= 0 {
		return errors.New("origin and destination are required")
	}
	if fromID == toID {
		return errors.New("origin and destination must differ")
	}
	s.FromID = fromID
	s.ToID = toID
	return nil
}

func (s *Session) Swap() {
	s.FromID, s.ToID = s.ToID, s.FromID
}

func (s *Session) SetDate(date time.Time) {
	s.Date = truncateDate(date)
}

// DateKey formats the date the way the journey search expects it.
func (s Session) DateKey() string {
	return s.Date.Format(time.DateOnly)
}

// Ready reports whether a journey search can run.
func (s Session) Ready() bool {
	return s.FromID > 0 && s.ToID > 0 && s.FromID != s.ToID && !s.Date.IsZero()
}

// Open makes journeyID the journey whose seat map is shown and invalidates
// every earlier ticket.
func (s *Session) Open(journeyID int) Ticket {
	s.generation++
	s.JourneyID = journeyID
	return Ticket{JourneyID: journeyID, Generation: s.generation}
}

// Close drops the open journey; in-flight responses become stale.
func (s *Session) Close() {
	s.generation++
	s.JourneyID = 0
}

// Accept reports whether a response issued under t may still be applied.
func (s Session) Accept(t Ticket) bool {
	return s.JourneyID != 0 && t.JourneyID == s.JourneyID && t.Generation == s.generation
}

// BeginSearch tags a new journey search. Responses carrying an older tag are
// stale.
func (s *Session) BeginSearch() uint64 {
	s.search++
	return s.search
}

// CancelSearch makes the in-flight search stale.
func (s *Session) CancelSearch() {
	s.search++
}

func (s Session) AcceptSearch(tag uint64) bool {
	return tag != 0 && tag == s.search
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

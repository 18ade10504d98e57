package booking

import (
	"testing"
	"time"
)

func TestNew_DefaultsToToday(t *testing.T) {
	now := time.Date(2026, 10, 14, 18, 45, 0, 0, time.UTC)
	s := New(now)
	if s.DateKey() != "2026-10-14" {
		t.Fatalf("unexpected date key: %s", s.DateKey())
	}
	if s.Ready() {
		t.Fatal("expected session without route to be not ready")
	}
}

func TestSetRoute_Validation(t *testing.T) {
	s := New(time.Now())
	if err := s.SetRoute(1, 1); err == nil {
		t.Fatal("expected error for identical stations")
	}
	if err := s.SetRoute(0, 2); err == nil {
		t.Fatal("expected error for missing origin")
	}
	if err := s.SetRoute(1, 2); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !s.Ready() {
		t.Fatal("expected session to be ready")
	}
	s.Swap()
	if s.FromID != 2 || s.ToID != 1 {
		t.Fatalf("unexpected route after swap: %d -> %d", s.FromID, s.ToID)
	}
}

func TestAccept_DiscardsStaleResponses(t *testing.T) {
	s := New(time.Now())

	first := s.Open(10)
	if !s.Accept(first) {
		t.Fatal("expected current ticket to be accepted")
	}

	second := s.Open(11)
	if s.Accept(first) {
		t.Fatal("expected ticket for previous journey to be rejected")
	}
	if !s.Accept(second) {
		t.Fatal("expected latest ticket to be accepted")
	}

	reopened := s.Open(10)
	if s.Accept(first) {
		t.Fatal("expected ticket from an earlier opening of the same journey to be rejected")
	}
	if !s.Accept(reopened) {
		t.Fatal("expected reopened ticket to be accepted")
	}

	s.Close()
	if s.Accept(reopened) {
		t.Fatal("expected tickets to be rejected after close")
	}
	if s.JourneyID != 0 {
		t.Fatalf("expected no open journey, got %d", s.JourneyID)
	}
}

func TestAcceptSearch_OnlyLatestSearch(t *testing.T) {
	s := New(time.Now())
	if s.AcceptSearch(0) {
		t.Fatal("expected untagged response to be rejected")
	}

	first := s.BeginSearch()
	second := s.BeginSearch()
	if s.AcceptSearch(first) {
		t.Fatal("expected superseded search to be rejected")
	}
	if !s.AcceptSearch(second) {
		t.Fatal("expected latest search to be accepted")
	}

	s.CancelSearch()
	if s.AcceptSearch(second) {
		t.Fatal("expected cancelled search to be rejected")
	}
}

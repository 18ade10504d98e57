package store

import (
	"testing"

	"busbilet-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestStationCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	cached, fresh, err := LoadStationCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(cached) != 0 || fresh {
		t.Fatalf("expected empty stale cache, got %+v fresh=%v", cached, fresh)
	}

	stations := []model.Station{{Id: 1, Name: "Esenler", City: "Istanbul"}, {Id: 2, Name: "ASTI", City: "Ankara"}}
	if err := SaveStationCache(stations); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cached, fresh, err = LoadStationCache()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh {
		t.Fatal("expected cache to be fresh")
	}
	if len(cached) != 2 || cached[1].City != "Ankara" {
		t.Fatalf("unexpected cached stations: %+v", cached)
	}
}

func TestRememberRoute_MovesToFront(t *testing.T) {
	setTestDirs(t)

	if _, ok := LastRoute(); ok {
		t.Fatal("expected no last route")
	}

	routes := []RecentRoute{
		{FromID: 1, ToID: 2, FromName: "Istanbul", ToName: "Ankara"},
		{FromID: 2, ToID: 3, FromName: "Ankara", ToName: "Izmir"},
		{FromID: 1, ToID: 2, FromName: "Istanbul", ToName: "Ankara"},
	}
	for _, route := range routes {
		if err := RememberRoute(route); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	history, err := LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 routes, got %+v", history)
	}
	last, ok := LastRoute()
	if !ok || last.FromID != 1 || last.ToID != 2 {
		t.Fatalf("unexpected last route: %+v", last)
	}
}

func TestRememberRoute_Capped(t *testing.T) {
	setTestDirs(t)

	for i := 1; i <= maxRecentRoutes+3; i++ {
		if err := RememberRoute(RecentRoute{FromID: i, ToID: i + 100}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	history, err := LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(history) != maxRecentRoutes {
		t.Fatalf("expected %d routes, got %d", maxRecentRoutes, len(history))
	}
}

func TestRememberRoute_InvalidInput(t *testing.T) {
	setTestDirs(t)

	if err := RememberRoute(RecentRoute{FromID: 0, ToID: 2}); err == nil {
		t.Fatal("expected error for missing origin")
	}
}

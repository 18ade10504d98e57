package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"busbilet-cli/model"
)

type stationItem struct {
	station model.Station
	recent  bool
}

func (s stationItem) Title() string {
	return s.station.Label()
}

func (s stationItem) Description() string {
	if s.recent {
		return "Recent"
	}
	if s.station.Name != "" && s.station.Name != s.station.City {
		return s.station.Name
	}
	return ""
}

func (s stationItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{s.station.City, s.station.Name}, " "))
}

// buildStationItems lists stations, leaving out excludeID and moving
// recentID to the top.
func buildStationItems(stations []model.Station, excludeID int, recentID int) []list.Item {
	items := make([]list.Item, 0, len(stations))
	var recent []list.Item
	for _, station := range stations {
		if station.Id == excludeID {
			continue
		}
		if recentID != 0 && station.Id == recentID {
			recent = append(recent, stationItem{station: station, recent: true})
			continue
		}
		items = append(items, stationItem{station: station})
	}
	return append(recent, items...)
}

type journeyItem struct {
	journey model.Journey
}

func (j journeyItem) Title() string {
	departure := "--:--"
	if !j.journey.Date.IsZero() {
		departure = j.journey.Date.Format("15:04")
	}
	return fmt.Sprintf("%s • %s → %s", departure, j.journey.From, j.journey.To)
}

func (j journeyItem) Description() string {
	parts := []string{}
	if j.journey.Provider != "" {
		parts = append(parts, j.journey.Provider)
	}
	parts = append(parts, formatPrice(j.journey.Price, j.journey.Currency))
	return strings.Join(parts, " • ")
}

func (j journeyItem) FilterValue() string {
	return strings.ToLower(j.journey.Provider)
}

func buildJourneyItems(journeys []model.Journey) []list.Item {
	items := make([]list.Item, 0, len(journeys))
	for _, journey := range journeys {
		items = append(items, journeyItem{journey: journey})
	}
	return items
}

type dateItem struct {
	date  time.Time
	label string
}

func (d dateItem) Title() string {
	title := fmt.Sprintf("%s • %s", d.date.Format("Mon"), d.date.Format("02/01"))
	if d.label != "" {
		return fmt.Sprintf("%s (%s)", title, d.label)
	}
	return title
}

func (d dateItem) Description() string {
	return d.date.Format(time.DateOnly)
}

func (d dateItem) FilterValue() string {
	return d.Title()
}

func buildDateItems(base time.Time, days int) []list.Item {
	start := truncateDate(base)
	items := make([]list.Item, 0, days)
	for i := 0; i < days; i++ {
		item := dateItem{date: start.AddDate(0, 0, i)}
		switch i {
		case 0:
			item.label = "Today"
		case 1:
			item.label = "Tomorrow"
		}
		items = append(items, item)
	}
	return items
}

// dateIndex is the position of selected among the picker days, or 0.
func dateIndex(base time.Time, selected time.Time, days int) int {
	start := truncateDate(base)
	for i := 0; i < days; i++ {
		if isSameDay(start.AddDate(0, 0, i), selected) {
			return i
		}
	}
	return 0
}

func isSameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(strings.ToLower(term), lower)
}

func formatPrice(price float64, currency string) string {
	if currency == "" {
		currency = "TL"
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}

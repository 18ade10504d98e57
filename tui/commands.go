package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"busbilet-cli/booking"
	"busbilet-cli/model"
	"busbilet-cli/store"
)

func (m appModel) fetchStationsCmd() tea.Cmd {
	client, logger, useCache := m.client, m.logger, m.useCache
	return func() tea.Msg {
		var cached []model.Station
		if useCache {
			stations, fresh, err := store.LoadStationCache()
			if err != nil {
				logger.Warn("could not read station cache", "error", err)
			}
			if fresh && len(stations) > 0 {
				return stationsMsg{stations: stations, cached: true}
			}
			cached = stations
		}

		stations, err := client.GetStations(context.Background())
		if err != nil {
			if len(cached) > 0 {
				logger.Warn("using stale station cache", "error", err)
				return stationsMsg{stations: cached, cached: true}
			}
			return stationsMsg{err: err}
		}
		if useCache {
			if err := store.SaveStationCache(stations); err != nil {
				logger.Warn("could not write station cache", "error", err)
			}
		}
		return stationsMsg{stations: stations}
	}
}

// fetchJourneysCmd tags the response with search so a result for an
// abandoned search is never shown.
func (m appModel) fetchJourneysCmd(search uint64, fromID int, toID int, date time.Time) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		journeys, err := client.SearchJourneys(context.Background(), fromID, toID, date)
		return journeysMsg{search: search, journeys: journeys, err: err}
	}
}

// fetchSeatsCmd tags the response with ticket so Update can drop it once
// the user has moved on to another journey.
func (m appModel) fetchSeatsCmd(ticket booking.Ticket) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		seats, err := client.GetSeats(context.Background(), ticket.JourneyID)
		return seatsMsg{ticket: ticket, seats: seats, err: err}
	}
}

func (m appModel) checkoutCmd(req model.CheckoutRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Checkout(context.Background(), req)
		return checkoutMsg{result: result, err: err}
	}
}

func (m appModel) fetchTicketCmd(pnr string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		record, err := client.GetTicket(context.Background(), pnr)
		return ticketMsg{pnr: pnr, record: record, err: err}
	}
}

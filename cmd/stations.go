package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"busbilet-cli/booking"
	"busbilet-cli/model"
	"busbilet-cli/store"
)

func newStationsCmd(a *app) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List the stations journeys start and end at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := a.stations(cmd.Context(), refresh)
			if err != nil {
				return err
			}
			renderStations(cmd.OutOrStdout(), stations)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached station list")
	return cmd
}

// stations serves the list from the on-disk cache while it is fresh, and
// falls back to a stale copy when the service is unreachable.
func (a *app) stations(ctx context.Context, refresh bool) ([]model.Station, error) {
	var cached []model.Station
	if a.cfg.Cache.Enabled {
		stations, fresh, err := store.LoadStationCache()
		if err != nil {
			a.logger.Warn("could not read station cache", "error", err)
		}
		if fresh && !refresh && len(stations) > 0 {
			return stations, nil
		}
		cached = stations
	}

	stations, err := a.client.GetStations(ctx)
	if err != nil {
		if len(cached) > 0 {
			a.logger.Warn("using stale station cache", "error", err)
			return cached, nil
		}
		return nil, a.failure("load stations", err, loadFailedText)
	}
	if a.cfg.Cache.Enabled {
		if err := store.SaveStationCache(stations); err != nil {
			a.logger.Warn("could not write station cache", "error", err)
		}
	}
	return stations, nil
}

func renderStations(out io.Writer, stations []model.Station) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "City", "Terminal"})
	for _, station := range stations {
		t.AppendRow(table.Row{station.Id, station.City, station.Name})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func newJourneysCmd(a *app) *cobra.Command {
	var from, to, date string
	cmd := &cobra.Command{
		Use:   "journeys",
		Short: "Search journeys between two stations",
		Example: `  busbilet journeys --from 1 --to 2
  busbilet journeys --from Istanbul --to Ankara --date 2026-10-20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session := booking.New(time.Now())
			if date != "" {
				day, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
				}
				session.SetDate(day)
			}

			origin, destination, err := a.resolveRoute(ctx, from, to)
			if err != nil {
				return err
			}
			if err := session.SetRoute(origin.Id, destination.Id); err != nil {
				return err
			}

			journeys, err := a.client.SearchJourneys(ctx, session.FromID, session.ToID, session.Date)
			if err != nil {
				return a.failure("search journeys", err, loadFailedText)
			}
			route := store.RecentRoute{FromID: origin.Id, ToID: destination.Id, FromName: origin.Label(), ToName: destination.Label()}
			if err := store.RememberRoute(route); err != nil {
				a.logger.Warn("could not save recent route", "error", err)
			}
			if len(journeys) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No journeys found on %s.\n", session.DateKey())
				return nil
			}
			renderJourneys(cmd.OutOrStdout(), journeys)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "origin station id or city (default: last searched route)")
	cmd.Flags().StringVar(&to, "to", "", "destination station id or city (default: last searched route)")
	cmd.Flags().StringVar(&date, "date", "", "travel date YYYY-MM-DD (default: today)")
	return cmd
}

// resolveRoute turns the --from/--to values into stations. Numeric values
// are ids; anything else is matched against city and terminal names. Both
// empty reuses the last searched route.
func (a *app) resolveRoute(ctx context.Context, from string, to string) (model.Station, model.Station, error) {
	if from == "" && to == "" {
		last, ok := store.LastRoute()
		if !ok {
			return model.Station{}, model.Station{}, fmt.Errorf("--from and --to are required")
		}
		return model.Station{Id: last.FromID, City: last.FromName}, model.Station{Id: last.ToID, City: last.ToName}, nil
	}
	if from == "" || to == "" {
		return model.Station{}, model.Station{}, fmt.Errorf("--from and --to are required")
	}

	var stations []model.Station
	resolve := func(value string) (model.Station, error) {
		if id, err := strconv.Atoi(value); err == nil {
			for _, station := range stations {
				if station.Id == id {
					return station, nil
				}
			}
			return model.Station{Id: id, City: value}, nil
		}
		if stations == nil {
			loaded, err := a.stations(ctx, false)
			if err != nil {
				return model.Station{}, err
			}
			stations = loaded
		}
		return findStation(stations, value)
	}

	origin, err := resolve(from)
	if err != nil {
		return model.Station{}, model.Station{}, err
	}
	destination, err := resolve(to)
	if err != nil {
		return model.Station{}, model.Station{}, err
	}
	return origin, destination, nil
}

func findStation(stations []model.Station, name string) (model.Station, error) {
	var matches []model.Station
	for _, station := range stations {
		if strings.EqualFold(station.City, name) || strings.EqualFold(station.Name, name) {
			matches = append(matches, station)
		}
	}
	switch len(matches) {
	case 0:
		return model.Station{}, fmt.Errorf("no station matches %q", name)
	case 1:
		return matches[0], nil
	default:
		return model.Station{}, fmt.Errorf("%q matches %d stations; use the station id", name, len(matches))
	}
}

func renderJourneys(out io.Writer, journeys []model.Journey) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "Departure", "From", "To", "Provider", "Price"})
	for _, journey := range journeys {
		t.AppendRow(table.Row{
			journey.Id,
			journey.Date.Format("2006-01-02 15:04"),
			journey.From,
			journey.To,
			journey.Provider,
			formatPrice(journey.Price, journey.Currency),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func formatPrice(price float64, currency string) string {
	if currency == "" {
		currency = "TL"
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}

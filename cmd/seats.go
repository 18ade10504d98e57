package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"busbilet-cli/seatmap"
)

var (
	maleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c8aa8")).Bold(true)
	femaleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d18a9e")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func newSeatsCmd(a *app) *cobra.Command {
	var listAll bool
	cmd := &cobra.Command{
		Use:   "seats <journeyId>",
		Short: "Show the seat layout of a journey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journeyID, err := parseJourneyID(args[0])
			if err != nil {
				return err
			}
			seats, err := a.client.GetSeats(cmd.Context(), journeyID)
			if err != nil {
				return a.failure("load seats", err, loadFailedText)
			}
			layout := seatmap.New(journeyID, seats)
			out := cmd.OutOrStdout()
			renderSeatGrid(out, layout)
			if listAll {
				fmt.Fprintln(out)
				renderSeatTable(out, layout)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listAll, "list", false, "also print every seat as a table")
	return cmd
}

func parseJourneyID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid journey id %q", value)
	}
	return id, nil
}

// renderSeatGrid prints the coach front to back with the aisle between
// columns 2 and 3. Free seats show their number; sold seats show M or F.
func renderSeatGrid(out io.Writer, layout *seatmap.Map) {
	rows := layout.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No seat map data.")
		return
	}
	cols := layout.Columns()
	free := 0

	var b strings.Builder
	b.WriteString(faintStyle.Render("      FRONT") + "\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%3d  ", row.Number))
		for c := 1; c <= cols; c++ {
			cell := "   "
			if seat, ok := layout.SeatAt(row.Number, c); ok {
				switch layout.State(seat) {
				case seatmap.StateOccupied:
					switch seatmap.Gender(seat.Gender) {
					case seatmap.GenderMale:
						cell = maleStyle.Render(" M ")
					case seatmap.GenderFemale:
						cell = femaleStyle.Render(" F ")
					default:
						cell = faintStyle.Render(" X ")
					}
				default:
					free++
					cell = fmt.Sprintf("%3d", seat.No)
				}
			}
			b.WriteString(cell)
			if c == 2 && cols > 2 {
				b.WriteString("   ")
			} else if c < cols {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n%d of %d seats free • %s sold to men • %s sold to women\n",
		free, len(layout.Seats()), maleStyle.Render("M"), femaleStyle.Render("F")))
	fmt.Fprint(out, b.String())
}

func renderSeatTable(out io.Writer, layout *seatmap.Map) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Seat ID", "No", "Row", "Col", "Side", "State", "Occupant", "Price"})
	for _, row := range layout.Rows() {
		for _, seat := range row.Seats {
			side := "right"
			if seat.LeftOfAisle() {
				side = "left"
			}
			occupant := ""
			if seat.Occupied() {
				occupant = seatmap.Gender(seat.Gender).String()
			}
			t.AppendRow(table.Row{seat.Id, seat.No, seat.Row, seat.Col, side, layout.State(seat), occupant, fmt.Sprintf("%.2f", seat.Price)})
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

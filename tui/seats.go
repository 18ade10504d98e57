package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"busbilet-cli/model"
	"busbilet-cli/seatmap"
)

const aisleAfterCol = 2

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	seatStyleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#abdbc1")).Bold(true)
	seatStyleMale      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c8aa8"))
	seatStyleFemale    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d18a9e"))
	seatStyleOccupied  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleCursor    = lipgloss.NewStyle().Reverse(true).Bold(true)
)

func (m appModel) handleSeatMapKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.seats == nil {
		return m, nil, false
	}
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "b":
		if m.seats.Len() == 0 {
			m.notice = "Select at least one seat first."
			return m, nil, true
		}
		m.notice = ""
		m.form.err = ""
		m.state = statePassengerForm
		return m, m.form.focusCmd(), true
	case "enter", " ":
		m.interactWithCursor()
	default:
		return m, nil, false
	}
	return m, nil, true
}

// interactWithCursor applies the action of the seat under the cursor:
// available seats ask for a gender, selected seats are released, occupied
// seats are fixed.
func (m *appModel) interactWithCursor() {
	seat, ok := m.seats.SeatAt(m.cursorRow, m.cursorCol)
	if !ok {
		return
	}
	m.notice = ""
	switch m.seats.State(seat) {
	case seatmap.StateAvailable:
		m.pendingSeat = seat.Id
		m.state = stateGenderPrompt
	case seatmap.StateSelected:
		m.seats.Deselect(seat.Id)
	}
}

func (m appModel) handleGenderKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	var gender seatmap.Gender
	switch msg.String() {
	case "m":
		gender = seatmap.GenderMale
	case "f":
		gender = seatmap.GenderFemale
	default:
		return m, nil, true
	}
	outcome := m.seats.Select(m.pendingSeat, gender)
	if !outcome.Accepted() {
		m.logger.Debug("seat selection rejected", "journey_id", m.seats.JourneyID(), "seat_id", m.pendingSeat, "reason", outcome.Kind.String())
	}
	m.pendingSeat = 0
	m.state = stateShowSeatMap
	return m, nil, true
}

func (m appModel) genderPromptView() string {
	seat, _ := m.seats.Seat(m.pendingSeat)
	prompt := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))
	body := fmt.Sprintf("Seat %d: who will travel here?\n\n%s   %s",
		seat.No,
		seatStyleMale.Bold(true).Render("[m] Male"),
		seatStyleFemale.Bold(true).Render("[f] Female"),
	)
	return prompt.Render(body)
}

// placeCursor puts the cursor on the first free seat, or the first seat
// when everything is sold.
func (m *appModel) placeCursor() {
	m.cursorRow, m.cursorCol = 0, 0
	rows := m.seats.Rows()
	for _, row := range rows {
		for _, seat := range row.Seats {
			if !seat.Occupied() {
				m.cursorRow, m.cursorCol = seat.Row, seat.Col
				return
			}
		}
	}
	if len(rows) > 0 && len(rows[0].Seats) > 0 {
		m.cursorRow, m.cursorCol = rows[0].Seats[0].Row, rows[0].Seats[0].Col
	}
}

// moveCursor steps to the next seat in the given direction, skipping empty
// cells. Moving between rows keeps the nearest column.
func (m *appModel) moveCursor(dRow int, dCol int) {
	if dCol != 0 {
		cols := m.seats.Columns()
		for c := m.cursorCol + dCol; c >= 1 && c <= cols; c += dCol {
			if _, ok := m.seats.SeatAt(m.cursorRow, c); ok {
				m.cursorCol = c
				return
			}
		}
		return
	}

	rows := m.seats.Rows()
	current := sort.Search(len(rows), func(i int) bool { return rows[i].Number >= m.cursorRow })
	next := current + dRow
	if next < 0 || next >= len(rows) {
		return
	}
	row := rows[next]
	best := row.Seats[0]
	for _, seat := range row.Seats[1:] {
		if abs(seat.Col-m.cursorCol) < abs(best.Col-m.cursorCol) {
			best = seat
		}
	}
	m.cursorRow, m.cursorCol = best.Row, best.Col
}

func (m appModel) renderSeatMap() string {
	if m.seats == nil || len(m.seats.Seats()) == 0 {
		return "No seat map data."
	}

	rows := m.seats.Rows()
	cols := m.seats.Columns()
	cellWidth := 2
	if m.showSeatNumbers {
		for _, seat := range m.seats.Seats() {
			cellWidth = max(cellWidth, len(fmt.Sprint(seat.No)))
		}
	}
	rowWidth := len(fmt.Sprint(rows[len(rows)-1].Number))

	gridWidth := cols*(cellWidth+1) - 1
	if cols > aisleAfterCol {
		gridWidth += 2
	}
	front := frontBarBlock(gridWidth, "FRONT")

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(hint(front.top) + "\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(hint(front.mid) + "\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(hint(front.bot) + "\n")

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%*d ", rowWidth, row.Number))
		for c := 1; c <= cols; c++ {
			seat, ok := m.seats.SeatAt(row.Number, c)
			text := strings.Repeat(" ", cellWidth)
			if ok {
				text = m.renderSeat(seat, cellWidth)
			}
			b.WriteString(text)
			if c == aisleAfterCol && cols > aisleAfterCol {
				b.WriteString("   ")
			} else if c < cols {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.selectionSummary())
	if warning := m.seats.Warning(); warning != "" {
		b.WriteString("\n" + warningStyle.Render(warning))
	}
	if m.notice != "" {
		b.WriteString("\n" + hint(m.notice))
	}
	legend := "Legend: " + seatStyleAvailable.Render("[] free") + " • " +
		seatStyleSelected.Render("selected") + " • " +
		seatStyleMale.Render("M sold (male)") + " • " +
		seatStyleFemale.Render("F sold (female)")
	return b.String() + "\n\n" + legend
}

func (m appModel) renderSeat(seat model.Seat, width int) string {
	state := m.seats.State(seat)
	text := seatToken(state, seat)
	if m.showSeatNumbers && state != seatmap.StateOccupied {
		text = fmt.Sprint(seat.No)
	}
	rendered := padCell(text, width)
	if seat.Row == m.cursorRow && seat.Col == m.cursorCol && (m.state == stateShowSeatMap || m.state == stateGenderPrompt) {
		return seatStyleCursor.Render(rendered)
	}
	return seatStyle(state, seat).Render(rendered)
}

func seatToken(state seatmap.SeatState, seat model.Seat) string {
	switch state {
	case seatmap.StateSelected:
		return "<>"
	case seatmap.StateOccupied:
		switch seatmap.Gender(seat.Gender) {
		case seatmap.GenderMale:
			return "M"
		case seatmap.GenderFemale:
			return "F"
		default:
			return "XX"
		}
	default:
		return "[]"
	}
}

func seatStyle(state seatmap.SeatState, seat model.Seat) lipgloss.Style {
	switch state {
	case seatmap.StateSelected:
		return seatStyleSelected
	case seatmap.StateOccupied:
		switch seatmap.Gender(seat.Gender) {
		case seatmap.GenderMale:
			return seatStyleMale
		case seatmap.GenderFemale:
			return seatStyleFemale
		default:
			return seatStyleOccupied
		}
	default:
		return seatStyleAvailable
	}
}

func (m appModel) selectionSummary() string {
	picks := m.seats.Picks()
	if len(picks) == 0 {
		return hint(fmt.Sprintf("No seats selected (max %d).", seatmap.MaxSeats))
	}
	labels := make([]string, 0, len(picks))
	for _, pick := range picks {
		seat, _ := m.seats.Seat(pick.SeatID)
		style := seatStyleMale
		if pick.Gender == seatmap.GenderFemale {
			style = seatStyleFemale
		}
		labels = append(labels, style.Render(fmt.Sprintf("%d (%s)", seat.No, pick.Gender)))
	}
	return fmt.Sprintf("Selected %d/%d: %s • Total: %s",
		len(picks), seatmap.MaxSeats,
		strings.Join(labels, ", "),
		successStyle.Render(formatPrice(m.seats.Total(), m.journey.Currency)),
	)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type barBlock struct {
	top string
	mid string
	bot string
}

func frontBarBlock(width int, label string) barBlock {
	width = max(width, len(label)+4, 10)

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return barBlock{top: border, mid: mid, bot: bottom}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

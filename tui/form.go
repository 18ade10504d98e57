package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"busbilet-cli/booking"
	"busbilet-cli/seatmap"
)

const (
	fieldName = iota
	fieldIdentity
	fieldCard
	fieldCount
)

var fieldLabels = [fieldCount]string{"Full name", "Identity number", "Card number"}

type passengerForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newPassengerForm() passengerForm {
	var f passengerForm

	name := textinput.New()
	name.Placeholder = "Name Surname"
	name.CharLimit = 64

	identity := textinput.New()
	identity.Placeholder = "11 digits"
	identity.CharLimit = 14

	card := textinput.New()
	card.Placeholder = "1111 2222 3333 4444"
	card.CharLimit = 23
	card.EchoMode = textinput.EchoPassword
	card.EchoCharacter = '•'

	f.inputs = [fieldCount]textinput.Model{name, identity, card}
	return f
}

func (f *passengerForm) focusCmd() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *passengerForm) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCmd()
}

func (f *passengerForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f passengerForm) passenger() booking.Passenger {
	return booking.Passenger{
		Name:           f.inputs[fieldName].Value(),
		IdentityNumber: f.inputs[fieldIdentity].Value(),
		CardNumber:     f.inputs[fieldCard].Value(),
	}
}

func (f passengerForm) view(selection *seatmap.Map, currency string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Passenger details"))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		label := fmt.Sprintf("%-16s", fieldLabels[i])
		if i == f.focus {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		} else {
			label = hint(label)
		}
		b.WriteString(label + " " + input.View() + "\n")
	}
	if selection != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Seats: %s • Total: %s", seatNumbers(selection), formatPrice(selection.Total(), currency)))
	}
	if f.err != "" {
		b.WriteString("\n\n" + warningStyle.Render(f.err))
	}
	return b.String()
}

func (m appModel) updatePassengerForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		if m.form.focus < fieldCount-1 {
			return m, m.form.move(1)
		}
		req, err := booking.CheckoutRequest(m.seats, m.form.passenger())
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.err = ""
		m.state = stateCheckingOut
		m.logger.Debug("submitting purchase", "journey_id", req.JourneyId, "seats", req.SeatIds, "card", booking.MaskCard(req.CreditCardNumber))
		return m, tea.Batch(m.checkoutCmd(req), m.spinner.Tick)
	}
	return m, m.form.update(msg)
}

func seatNumbers(selection *seatmap.Map) string {
	parts := make([]string, 0, selection.Len())
	for _, pick := range selection.Picks() {
		seat, _ := selection.Seat(pick.SeatID)
		parts = append(parts, fmt.Sprint(seat.No))
	}
	return strings.Join(parts, ", ")
}

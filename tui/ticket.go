package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

func newPNRInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "PNR code"
	input.CharLimit = 16
	return input
}

func (m appModel) ticketLookupView() string {
	return lipgloss.NewStyle().Bold(true).Render("Find a ticket") + "\n\n" +
		"PNR " + m.pnrInput.View()
}

func (m appModel) ticketView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Ticket %s", m.ticketPNR)))
	b.WriteString("\n\n")
	keys := m.ticket.Keys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}
	for _, key := range keys {
		b.WriteString(hint(fmt.Sprintf("%-*s", width, key)))
		b.WriteString("  ")
		b.WriteString(m.ticket.Text(key))
		b.WriteString("\n")
	}
	if len(keys) == 0 {
		b.WriteString(hint("The booking service returned an empty record."))
	}
	return b.String()
}

func (m appModel) resultView() string {
	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder())
	if !m.result.IsSuccess {
		message := m.result.Message
		if message == "" {
			message = operationFailedText
		}
		body := warningStyle.Render("Purchase not completed") + "\n\n" + message + "\n\n" +
			hint("Your seat selection is unchanged. Press enter to return to the seat map.")
		return panel.BorderForeground(lipgloss.Color("203")).Render(body)
	}
	body := successStyle.Render("Ticket purchased") + "\n\n" +
		fmt.Sprintf("PNR: %s", lipgloss.NewStyle().Bold(true).Render(m.result.PnrCode))
	if m.result.Message != "" {
		body += "\n" + m.result.Message
	}
	body += "\n\n" + hint("enter reload seat map • esc journeys • ctrl+t look up this ticket")
	return panel.BorderForeground(lipgloss.Color("2")).Render(body)
}

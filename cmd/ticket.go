package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"busbilet-cli/model"
	"busbilet-cli/service"
)

func newTicketCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ticket <pnr>",
		Short: "Look up a purchased ticket by PNR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pnr := strings.ToUpper(strings.TrimSpace(args[0]))
			record, err := a.client.GetTicket(cmd.Context(), pnr)
			if err != nil {
				if service.IsNotFound(err) {
					return fmt.Errorf("no ticket found for PNR %s", pnr)
				}
				return a.failure("ticket lookup", err, loadFailedText)
			}
			renderTicket(cmd.OutOrStdout(), pnr, record)
			return nil
		},
	}
}

func renderTicket(out io.Writer, pnr string, record model.TicketRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Ticket " + pnr)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, key := range record.Keys() {
		t.AppendRow(table.Row{key, record.Text(key)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

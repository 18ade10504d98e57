package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"busbilet-cli/booking"
	"busbilet-cli/seatmap"
)

type buyOptions struct {
	seats     []string
	passenger booking.Passenger
	yes       bool
}

// ErrPurchaseRefused is returned once the service's refusal message has been
// printed; only the exit status is left to set.
var ErrPurchaseRefused = errors.New("purchase refused")

func newBuyCmd(a *app) *cobra.Command {
	var opts buyOptions
	cmd := &cobra.Command{
		Use:   "buy <journeyId>",
		Short: "Buy seats on a journey",
		Long: `Buy up to four seats on a journey. Each --seat names a seat id and the
gender of the passenger travelling in it (m or f). Passenger details that are
not given as flags are asked for interactively.`,
		Example: `  busbilet buy 42 --seat 12:f --seat 13:f --name "Ayse Yilmaz" --identity 11111111111 --card 1111222233334444`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journeyID, err := parseJourneyID(args[0])
			if err != nil {
				return err
			}
			picks, err := parseSeatFlags(opts.seats)
			if err != nil {
				return err
			}

			seats, err := a.client.GetSeats(cmd.Context(), journeyID)
			if err != nil {
				return a.failure("load seats", err, loadFailedText)
			}
			selection := seatmap.New(journeyID, seats)
			if err := applyPicks(selection, picks); err != nil {
				return err
			}

			passenger, err := promptPassenger(opts.passenger)
			if err != nil {
				return err
			}
			req, err := booking.CheckoutRequest(selection, passenger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderOrder(out, selection)
			if !opts.yes {
				confirm := promptui.Prompt{
					Label:     confirmLabel(selection.Total(), req.CreditCardNumber),
					IsConfirm: true,
				}
				if _, err := confirm.Run(); err != nil {
					return errors.New("purchase cancelled")
				}
			}

			a.logger.Debug("submitting purchase", "journey_id", req.JourneyId, "seats", req.SeatIds)
			result, err := a.client.Checkout(cmd.Context(), req)
			if err != nil {
				return a.failure("checkout", err, operationFailedText)
			}
			if !result.IsSuccess {
				a.logger.Info("purchase refused", "journey_id", req.JourneyId, "message", result.Message)
				fmt.Fprintln(out, result.Message)
				return ErrPurchaseRefused
			}
			a.logger.Info("ticket purchased", "journey_id", req.JourneyId, "pnr", result.PnrCode)
			fmt.Fprintf(out, "Ticket purchased. PNR: %s\n", result.PnrCode)
			if result.Message != "" {
				fmt.Fprintln(out, result.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&opts.seats, "seat", nil, "seat to buy as id:gender, e.g. 12:f (repeatable, up to 4)")
	cmd.Flags().StringVar(&opts.passenger.Name, "name", "", "passenger full name")
	cmd.Flags().StringVar(&opts.passenger.IdentityNumber, "identity", "", "11-digit identity number")
	cmd.Flags().StringVar(&opts.passenger.CardNumber, "card", "", "credit card number")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the payment confirmation")
	_ = cmd.MarkFlagRequired("seat")
	return cmd
}

// parseSeatFlags reads "id:gender" values. The gender accepts the wire codes
// 1 and 2 as well as m/f and male/female.
func parseSeatFlags(values []string) ([]seatmap.Pick, error) {
	if len(values) == 0 {
		return nil, errors.New("at least one --seat is required")
	}
	picks := make([]seatmap.Pick, 0, len(values))
	for _, value := range values {
		idText, genderText, ok := strings.Cut(strings.TrimSpace(value), ":")
		if !ok {
			return nil, fmt.Errorf("invalid --seat %q: use id:gender, e.g. 12:f", value)
		}
		id, err := strconv.Atoi(idText)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid seat id in %q", value)
		}
		gender, err := seatmap.ParseGender(strings.TrimSpace(genderText))
		if err != nil {
			return nil, fmt.Errorf("invalid --seat %q: %w", value, err)
		}
		picks = append(picks, seatmap.Pick{SeatID: id, Gender: gender})
	}
	return picks, nil
}

// applyPicks runs every requested seat through the selection rules in the
// order given, stopping at the first rejection.
func applyPicks(selection *seatmap.Map, picks []seatmap.Pick) error {
	for _, pick := range picks {
		outcome := selection.Select(pick.SeatID, pick.Gender)
		if !outcome.Accepted() {
			return fmt.Errorf("seat %d: %s", pick.SeatID, outcome.Message)
		}
	}
	return nil
}

// promptPassenger asks for the fields that were not given as flags.
func promptPassenger(p booking.Passenger) (booking.Passenger, error) {
	fields := []struct {
		value    *string
		label    string
		validate promptui.ValidateFunc
		mask     rune
	}{
		{&p.Name, "Passenger name", booking.ValidateName, 0},
		{&p.IdentityNumber, "Identity number", booking.ValidateIdentity, 0},
		{&p.CardNumber, "Card number", booking.ValidateCard, '*'},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) != "" {
			continue
		}
		prompt := promptui.Prompt{
			Label:    field.label,
			Validate: field.validate,
			Mask:     field.mask,
		}
		value, err := prompt.Run()
		if err != nil {
			return booking.Passenger{}, fmt.Errorf("%s: %w", strings.ToLower(field.label), err)
		}
		*field.value = value
	}
	return p.Normalize(), nil
}

// confirmLabel carries no currency: the seat layout does not say which one
// the journey is priced in.
func confirmLabel(total float64, card string) string {
	return fmt.Sprintf("Pay %.2f with card %s", total, booking.MaskCard(card))
}

func renderOrder(out io.Writer, selection *seatmap.Map) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Seat", "Row", "Passenger", "Price"})
	for _, pick := range selection.Picks() {
		seat, _ := selection.Seat(pick.SeatID)
		t.AppendRow(table.Row{seat.No, seat.Row, pick.Gender, fmt.Sprintf("%.2f", seat.Price)})
	}
	t.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%.2f", selection.Total())})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

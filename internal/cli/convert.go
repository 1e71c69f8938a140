package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/unitto/internal/calc"
	"github.com/mesh-intelligence/unitto/internal/convert"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

// convertOutput is the JSON form of a conversion.
type convertOutput struct {
	Input  string `json:"input"`
	From   string `json:"from"`
	To     string `json:"to"`
	Output string `json:"output"`
}

func (a *app) newConvertCmd() *cobra.Command {
	var rates map[string]string
	cmd := &cobra.Command{
		Use:   "convert <expression> <from> [to]",
		Short: "Evaluate an expression and convert it between units",
		Long: `Evaluate an expression in the "from" unit and print it in the "to" unit.
When "to" is omitted, the unit last paired with "from" is used. Currency
units take their rate from --rate, or from the latest stored rate. Rates
are the amount of the currency equal to one US dollar.

` + periodNote,
		Example: `  unitto convert 1.5 kilometer mile
  unitto convert "100+20" celsius fahrenheit
  unitto convert 250 usd eur --rate eur=0.92`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, rates)
		},
	}
	cmd.Flags().StringToStringVar(&rates, "rate", nil, "currency rate override, e.g. eur=0.92")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string, flagRates map[string]string) error {
	from, err := a.lookupUnit(args[1])
	if err != nil {
		return err
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	toID := ""
	if len(args) == 3 {
		toID = args[2]
	} else {
		state, err := backend.UnitState(from.ID)
		if err != nil {
			return sysError(err)
		}
		if state.PairedUnitID == "" {
			return userError(fmt.Errorf("%s has no paired unit; name the target unit", from.ID))
		}
		toID = state.PairedUnitID
	}
	to, err := a.lookupUnit(toID)
	if err != nil {
		return err
	}
	if from.Group != to.Group {
		return userError(fmt.Errorf("%w: %s (%s) and %s (%s)",
			types.ErrGroupMismatch, from.ID, from.Group, to.ID, to.Group))
	}

	conv := convert.New()
	if from, err = withRate(conv, from, flagRates, backend.LatestRates); err != nil {
		return err
	}
	if to, err = withRate(conv, to, flagRates, backend.LatestRates); err != nil {
		return err
	}

	session := calc.NewSession(a.formatter, from, to,
		calc.WithConverter(conv),
		calc.WithPrecision(a.prefs.Precision))
	session.SetInput(args[0])

	out, err := session.Output()
	if err != nil {
		return userError(err)
	}
	if out == "" {
		return userError(fmt.Errorf("incomplete expression %q", args[0]))
	}

	if err := backend.RecordConversion(from.ID, to.ID); err != nil {
		a.log.Warn().Err(err).Msg("recording conversion")
	}
	a.log.Debug().Str("from", from.ID).Str("to", to.ID).Str("input", session.RawInput()).Msg("converted")

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), convertOutput{
			Input:  session.Input(),
			From:   from.ID,
			To:     to.ID,
			Output: out,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", session.Input(), from.Symbol, out, to.Symbol)
	return nil
}

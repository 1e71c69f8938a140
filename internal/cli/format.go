package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/unitto/internal/expr"
)

// periodNote is appended to the help of commands that read numbers.
const periodNote = `With the period separator, '.' groups thousands and ',' is the
fractional point: "1.500" is one thousand five hundred, "1,5" is one and a
half.`

func (a *app) newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <text>",
		Short: "Group the numbers in text with the configured separator",
		Long: `Group the numbers in text with the configured separator.

` + periodNote,
		Example: `  unitto format 1234567.89
  unitto format "50+123456÷8"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := a.formatter.Format(args[0])
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"input":     args[0],
					"separator": a.formatter.Separator().String(),
					"output":    out,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// evalOutput is the JSON form of an evaluation.
type evalOutput struct {
	Input string `json:"input"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func (a *app) newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an expression of numbers, + – × ÷ ^ √ and parentheses.
The result is printed with the configured precision and separator. An
expression that is not finished prints "incomplete"; one that is
mathematically undefined, such as a division by zero, prints "invalid".

` + periodNote,
		Example: `  unitto eval "2×(3+4"
  unitto eval "√16+2^10"`,
		Args: cobra.ExactArgs(1),
		RunE: a.runEval,
	}
}

func (a *app) runEval(cmd *cobra.Command, args []string) error {
	src := a.formatter.Unformat(args[0])
	res := expr.Evaluate(src)

	o := evalOutput{Input: args[0], Kind: res.Kind.String()}
	switch res.Kind {
	case expr.KindValue:
		o.Value = a.formatter.FormatDecimal(res.Value, a.prefs.Precision)
	default:
		if res.Err != nil {
			o.Error = res.Err.Error()
		}
	}
	a.log.Debug().Str("input", src).Str("kind", o.Kind).Msg("evaluated")

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), o)
	}
	if res.Kind == expr.KindValue {
		fmt.Fprintln(cmd.OutOrStdout(), o.Value)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), o.Kind)
	}
	return nil
}

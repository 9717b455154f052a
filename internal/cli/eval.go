package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/neuralnet/internal/activation"
)

func evalCmd() *cobra.Command {
	var digits int

	c := &cobra.Command{
		Use:   "eval <activation> x1 x2 ...",
		Short: "Print value and derivative of an activation function",
		Long: "Print one \"value ||| derivative\" line per input.\n" +
			"Activations: " + strings.Join(activation.Names(), ", "),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := activation.ByName(args[0])
			if err != nil {
				return err
			}
			if digits < 0 || digits > 17 {
				return fmt.Errorf("digits must be in [0, 17], got %d", digits)
			}
			xs, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			return activation.WritePoints(cmd.OutOrStdout(), activation.Evaluate(act, xs), digits)
		},
	}

	// Everything after the first positional argument is a value, so
	// negative numbers are not mistaken for flags.
	c.Flags().SetInterspersed(false)
	c.Flags().IntVarP(&digits, "digits", "d", 16, "Decimal places")
	return c
}

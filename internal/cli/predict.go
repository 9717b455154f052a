package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/neuralnet/internal/serialization"
	"github.com/born-ml/neuralnet/internal/tensor"
	"github.com/born-ml/neuralnet/internal/training"
)

func predictCmd(a *app) *cobra.Command {
	var (
		modelPath  string
		normalized bool
	)

	c := &cobra.Command{
		Use:   "predict x1 x2 ...",
		Short: "Run a saved model on one or more input rows",
		Long: "Run a saved model. The values are split into rows of as many values as\n" +
			"the model has inputs; one output row is printed per input row.\n\n" +
			"A negative first value would be read as a flag; put -- before the values:\n\n" +
			"  neuralnet predict --model model.json -- -1 2",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, snap, err := serialization.LoadFile(modelPath)
			if err != nil {
				return err
			}

			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			width := network.Inputs()
			if len(values)%width != 0 {
				return fmt.Errorf("got %d values, expected a multiple of %d inputs", len(values), width)
			}
			x, err := tensor.FromSlice(values, tensor.Shape{len(values) / width, width})
			if err != nil {
				return err
			}

			if !normalized && len(snap.InputScale) > 0 {
				if x, err = (&training.MaxScaler{Scale: snap.InputScale}).Transform(x); err != nil {
					return err
				}
			}

			y, err := network.Predict(x)
			if err != nil {
				return err
			}

			if !normalized && len(snap.OutputScale) > 0 {
				if y, err = (&training.MaxScaler{Scale: snap.OutputScale}).Inverse(y); err != nil {
					return err
				}
			}

			a.log.Debug().Str("model", modelPath).Int("rows", y.Rows()).Msg("prediction done")
			return writeRows(cmd.OutOrStdout(), y)
		},
	}

	// Everything after the first positional argument is a value, so
	// negative numbers are not mistaken for flags.
	c.Flags().SetInterspersed(false)
	c.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Trained model file")
	c.Flags().BoolVar(&normalized, "normalized", false, "Inputs and outputs are in the model's scaled units")
	return c
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func writeRows(w io.Writer, t *tensor.Tensor) error {
	for _, row := range t.ToRows() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}

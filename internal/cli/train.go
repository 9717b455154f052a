package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/neuralnet/internal/config"
	"github.com/born-ml/neuralnet/internal/serialization"
	"github.com/born-ml/neuralnet/internal/training"
)

func trainCmd(a *app) *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	c := &cobra.Command{
		Use:   "train",
		Short: "Train a network described by a topology file and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			topo, err := config.LoadTopology(configPath)
			if err != nil {
				return err
			}

			rng := topo.Rand(a.settings.Seed)
			network, err := topo.Build(rng)
			if err != nil {
				return err
			}

			inputs, outputs, err := training.PrepareDataset(topo.Samples())
			if err != nil {
				return err
			}

			var snapOpts serialization.Options
			if topo.Training.Normalize {
				inScaler := training.FitMaxScaler(inputs)
				outScaler := training.FitMaxScaler(outputs)
				if inputs, err = inScaler.Transform(inputs); err != nil {
					return err
				}
				if outputs, err = outScaler.Transform(outputs); err != nil {
					return err
				}
				snapOpts.InputScale = inScaler.Scale
				snapOpts.OutputScale = outScaler.Scale
			}

			opts, err := topo.TrainerOptions(rng)
			if err != nil {
				return err
			}
			opts = append(opts, training.WithLogger(a.log))

			trainer, err := training.NewTrainerFromTensors(network, inputs, outputs, opts...)
			if err != nil {
				return err
			}
			halt, err := topo.HaltCondition()
			if err != nil {
				return err
			}
			if err := trainer.WithHaltCondition(halt); err != nil {
				return err
			}

			report, err := trainer.Train(cmd.Context())
			if err != nil {
				return err
			}

			snapOpts.Metadata = map[string]string{
				"config":     configPath,
				"epochs":     strconv.Itoa(report.Epochs),
				"final_loss": strconv.FormatFloat(report.FinalLoss, 'g', -1, 64),
				"halt":       report.Halt,
			}
			if err := serialization.SaveFile(outPath, network, snapOpts); err != nil {
				return err
			}
			a.log.Info().Str("path", outPath).Msg("model saved")

			fmt.Fprintf(cmd.OutOrStdout(), "epochs: %d\nloss:   %g\nmodel:  %s\n", report.Epochs, report.FinalLoss, outPath)
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "Topology file (required)")
	c.Flags().StringVarP(&outPath, "out", "o", "model.json", "Where to write the trained model")
	_ = c.MarkFlagRequired("config")
	return c
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"co2d/internal/artifacts"
	"co2d/internal/config"
	"co2d/internal/dataset"
	"co2d/internal/predictor"
)

func newFitCmd(g *globalFlags) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:     "fit",
		Short:   "Fit encoding table, scaler and model from a labelled CSV and publish them",
		Example: "  co2d fit --data co2.csv --store-path ./artifacts",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if data == "" {
				return usageErr("fit requires --data")
			}
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, closeLog, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return fnFit(cmd.Context(), cfg, data, cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Training CSV with a \""+dataset.Target+"\" column")
	return cmd
}

// runFit reads the dataset, fits every artifact in one pass and saves the set
// as one unit.
func runFit(ctx context.Context, cfg config.Config, data string, out io.Writer, log zerolog.Logger) error {
	schema := predictor.DefaultSchema
	ts, err := dataset.Load(data, schema)
	if err != nil {
		return err
	}
	log.Info().Str("data", data).Int("rows", ts.Len()).Msg("fitting")
	a, err := predictor.FitAll(schema, ts)
	if err != nil {
		return err
	}
	store, err := artifacts.Open(artifacts.Options{Kind: cfg.Store.Kind, Path: cfg.Store.Path, Keep: cfg.Store.Keep})
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(ctx, a); err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}
	log.Info().Str("version", a.Meta.Version).Str("store", cfg.Store.Kind+":"+cfg.Store.Path).Msg("artifacts published")
	fmt.Fprintf(out, "rows:    %d\nr2:      %.4f\nversion: %s\n", a.Meta.Rows, a.Meta.R2, a.Meta.Version)
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"co2d/internal/client"
	"co2d/internal/predictor"
)

const defaultServer = "http://127.0.0.1:8080"

type clientFlags struct {
	server  string
	timeout time.Duration
	json    bool
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", defaultServer, "co2d server URL")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the raw JSON response")
}

func (f *clientFlags) client() (*client.Client, error) {
	return client.New(f.server, client.WithTimeout(f.timeout))
}

func newPredictCmd() *cobra.Command {
	var cf clientFlags
	values := map[predictor.Field]*string{}
	flagNames := map[predictor.Field]string{
		predictor.FieldMake:               "make",
		predictor.FieldModel:              "model",
		predictor.FieldVehicleClass:       "vehicle-class",
		predictor.FieldEngineSize:         "engine-size",
		predictor.FieldTransmission:       "transmission",
		predictor.FieldFuelType:           "fuel-type",
		predictor.FieldFuelConsumptionHwy: "fuel-consumption-hwy",
	}
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Predict CO2 emissions for one vehicle via a running server",
		Example: "  co2d predict --make FORD --model F-150 --vehicle-class 'PICKUP TRUCK - STANDARD' \\\n    --engine-size 3.5 --transmission AS6 --fuel-type X --fuel-consumption-hwy 10.8",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := predictor.Record{}
			var missing []string
			for _, f := range predictor.DefaultSchema.Fields() {
				name := flagNames[f]
				if !cmd.Flags().Changed(name) {
					missing = append(missing, "--"+name)
					continue
				}
				rec[f] = *values[f]
			}
			if len(missing) > 0 {
				return usageErr("missing %s", strings.Join(missing, ", "))
			}
			c, err := cf.client()
			if err != nil {
				return err
			}
			resp, err := c.Predict(cmd.Context(), rec)
			if err != nil {
				return err
			}
			if cf.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f g/km (version %s)\n", resp.Prediction, resp.Version)
			return nil
		},
	}
	for _, f := range predictor.DefaultSchema.Fields() {
		values[f] = cmd.Flags().String(flagNames[f], "", string(f))
	}
	cf.register(cmd)
	return cmd
}

func newLabelsCmd() *cobra.Command {
	var cf clientFlags
	cmd := &cobra.Command{
		Use:     "labels [field]",
		Short:   "List the valid labels of the categorical fields",
		Example: "  co2d labels\n  co2d labels Fuel_Type",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				resp, err := c.LabelsFor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if cf.json {
					return printJSON(out, resp)
				}
				for _, l := range resp.Labels {
					fmt.Fprintln(out, l)
				}
				return nil
			}
			resp, err := c.Labels(cmd.Context())
			if err != nil {
				return err
			}
			if cf.json {
				return printJSON(out, resp)
			}
			fields := make([]string, 0, len(resp.Labels))
			for f := range resp.Labels {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(out, "%s: %s\n", f, strings.Join(resp.Labels[f], ", "))
			}
			return nil
		},
	}
	cf.register(cmd)
	return cmd
}

func newStatusCmd() *cobra.Command {
	var cf clientFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the serving status of a running server",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.client()
			if err != nil {
				return err
			}
			resp, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cf.register(cmd)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ja7ad/greenmeter/pkg/projection"
	"github.com/ja7ad/greenmeter/pkg/report"
)

func newProjectCmd() *cobra.Command {
	var (
		daily int
		p     projection.Params
		out   string
	)

	cmd := &cobra.Command{
		Use:   "project DELTA_FILE",
		Short: "Project the savings of a delta over a year of runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if daily < 1 {
				return fmt.Errorf("daily must be >= 1, got %d", daily)
			}
			d, err := report.ReadDelta(args[0])
			if err != nil {
				return err
			}
			pr := projection.Project(d, daily, p)
			printProjection(os.Stdout, pr)

			if out == "" {
				return nil
			}
			if err := report.WriteJSON(out, pr); err != nil {
				return err
			}
			fmt.Printf("\nwritten: %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&daily, "daily", "d", 100, "test runs per day")
	cmd.Flags().Float64Var(&p.EnergyPricePerKWh, "price", projection.DefaultEnergyPricePerKWh, "energy price per kWh")
	cmd.Flags().Float64Var(&p.CreditPricePerTon, "credit", projection.DefaultCreditPricePerTon, "carbon credit price per tonne CO2e")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the projection as JSON to this file")
	return cmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/spf13/cobra"
)

func newPointsCmd(c *cli) *cobra.Command {
	pointsCmd := &cobra.Command{
		Use:   "points",
		Short: "Manage the water point inventory",
	}

	var filter usecases.WaterPointFilter
	var status, pointType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List water points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			filter.Status = entities.WaterPointStatus(status)
			filter.Type = entities.WaterPointType(pointType)
			points, err := svc.WaterPoints.ListWaterPoints(cmd.Context(), filter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tCOMMUNE\tREGION\tCAPACITY")
			for _, wp := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", wp.ID, wp.Name, wp.Type, wp.Status, wp.Commune, wp.Region, wp.DailyCapacity)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&filter.Search, "search", "", "match name or commune")
	listCmd.Flags().StringVar(&status, "status", "", "actif, maintenance, panne, inactif or en_construction")
	listCmd.Flags().StringVar(&pointType, "type", "", "forage, puits, source, réservoir or borne_fontaine")

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import water points from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			result, err := svc.WaterPoints.ImportCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d points d'eau importés, %d lignes ignorées.\n", result.Imported, result.Skipped)
			return nil
		},
	}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				return svc.WaterPoints.ExportCSV(cmd.Context(), cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := svc.WaterPoints.ExportCSV(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Import new water points from the partner register (MIONJO_REGISTER_URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			result, err := svc.WaterPoints.SyncRegister(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d lus, %d ajoutés, %d déjà connus, %d ignorés.\n",
				result.Fetched, result.Added, result.Duplicates, result.Skipped)
			return nil
		},
	}

	pointsCmd.AddCommand(listCmd, importCmd, exportCmd, syncCmd)
	return pointsCmd
}

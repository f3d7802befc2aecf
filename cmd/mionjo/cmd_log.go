package main

import (
	"fmt"

	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(c *cli) *cobra.Command {
	notificationsCmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read the simulated email log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			items, err := svc.Notifications.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range items {
				marker := " "
				if !n.IsRead {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  %s  %s\n  to: %s\n", marker, n.ID, n.Timestamp, n.Subject, n.Recipient)
			}
			return nil
		},
	}

	var all bool
	readCmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark one notification, or all with --all, as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			if all {
				n, err := svc.Notifications.MarkAllRead(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d notifications marquées comme lues.\n", n)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("give a notification id or --all")
			}
			if err := svc.Notifications.MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notification %s marquée comme lue.\n", args[0])
			return nil
		},
	}
	readCmd.Flags().BoolVar(&all, "all", false, "mark every notification as read")

	notificationsCmd.AddCommand(listCmd, readCmd)
	return notificationsCmd
}

func newPredictionsCmd(c *cli) *cobra.Command {
	predictionsCmd := &cobra.Command{
		Use:   "predictions",
		Short: "Inspect and refresh risk predictions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List predictions, most severe first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			preds, err := svc.Predictions.ListPredictions(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range preds {
				fmt.Fprintln(cmd.OutOrStdout(), usecases.FormatPrediction(p))
			}
			return nil
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Assess every water point again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			n, err := svc.Predictions.RefreshPredictions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d prédictions enregistrées.\n", n)
			return nil
		},
	}

	predictionsCmd.AddCommand(listCmd, refreshCmd)
	return predictionsCmd
}

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			summary, err := svc.Dashboard.Summary(cmd.Context(), usecases.DashboardFilter{})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), usecases.FormatSummary(summary))
			return nil
		},
	}
}

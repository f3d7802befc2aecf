package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/abelzeko/mionjo/internal/entities"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/spf13/cobra"
)

func newUsersCmd(c *cli) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts",
	}

	var filter usecases.UserFilter
	var role string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			filter.Role = entities.UserRole(role)
			users, err := svc.Users.ListUsers(cmd.Context(), filter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tORGANIZATION\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", u.ID, u.FullName, u.Email, u.Role, u.Organization, u.IsActive)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&filter.Search, "search", "", "match name, email or organization")
	listCmd.Flags().StringVar(&role, "role", "", "admin, ong, technicien or communaute")

	var req usecases.UserRequest
	var newRole string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an active user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			req.Role = entities.UserRole(newRole)
			user, err := svc.Users.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %s créé (%s).\n", user.ID, user.Email)
			return nil
		},
	}
	addCmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	addCmd.Flags().StringVar(&req.Email, "email", "", "email address")
	addCmd.Flags().StringVar(&newRole, "role", string(entities.RoleCommunity), "admin, ong, technicien or communaute")
	addCmd.Flags().StringVar(&req.Organization, "org", "", "organization")
	addCmd.Flags().StringVar(&req.Region, "region", "", "region")

	activateCmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Restore access for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Users.ActivateUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %s activé.\n", args[0])
			return nil
		},
	}

	var yesDeactivate bool
	deactivateCmd := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Suspend access for a user (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Users.DeactivateUser(cmd.Context(), args[0], yesDeactivate); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %s suspendu.\n", args[0])
			return nil
		},
	}
	deactivateCmd.Flags().BoolVarP(&yesDeactivate, "yes", "y", false, "confirm the suspension")

	var yesDelete bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user permanently (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Users.DeleteUser(cmd.Context(), args[0], yesDelete); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Utilisateur %s supprimé.\n", args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yesDelete, "yes", "y", false, "confirm the deletion")

	usersCmd.AddCommand(listCmd, addCmd, activateCmd, deactivateCmd, deleteCmd)
	return usersCmd
}

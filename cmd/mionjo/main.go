package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelzeko/mionjo/internal/app"
	"github.com/abelzeko/mionjo/internal/config"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/spf13/cobra"
)

func main() {
	// stdout carries command output, logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, c := newRootCmd(func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg)
	})
	err = root.ExecuteContext(ctx)
	c.close()
	if err != nil {
		os.Exit(1)
	}
}

// cli opens the application lazily so that --help needs no database
type cli struct {
	open func(ctx context.Context) (*app.App, error)
	app  *app.App
}

func (c *cli) services(cmd *cobra.Command) (*usecases.Services, error) {
	if c.app == nil {
		a, err := c.open(cmd.Context())
		if err != nil {
			return nil, err
		}
		c.app = a
	}
	return c.app.Services, nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	c.app = nil
}

// newRootCmd builds the command tree over the given application opener
func newRootCmd(open func(ctx context.Context) (*app.App, error)) (*cobra.Command, *cli) {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "mionjo",
		Short: "Administer the MIONJO water point database",
		Long: `Administer the MIONJO water point database.

The database is selected with MIONJO_DB_PATH and MIONJO_DB_DRIVER, read from
the environment or from a .env file in the working directory.`,
		SilenceUsage: true,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the missing collections from the built-in fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// opening the application seeds every missing collection
			if _, err := c.services(cmd); err != nil {
				return err
			}
			keys, err := c.app.Repo.StoredKeys(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Collections seeded (%d keys):\n", len(keys))
			for _, k := range keys {
				fmt.Fprintf(out, "  %s\n", k)
			}
			return nil
		},
	}

	root.AddCommand(
		seedCmd,
		newPointsCmd(c),
		newUsersCmd(c),
		newNotificationsCmd(c),
		newPredictionsCmd(c),
		newDashboardCmd(c),
	)
	return root, c
}

// explain adds the command-line hint matching a use case error
func explain(err error) error {
	if errors.Is(err, usecases.ErrConfirmationRequired) {
		return fmt.Errorf("%w (pass --yes to proceed)", err)
	}
	return err
}

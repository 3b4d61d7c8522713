package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"property-viewer/internal"
	"property-viewer/internal/adapters/tui"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/core/domain"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envPath    string
	backendURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "property-viewer",
		Short: "Browse property listings and manage per-user favorites",
		Long: `property-viewer talks to the listings REST backend.

Without a subcommand it opens the interactive terminal UI. The other
commands run a single request and print the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", "", "dotenv file to load (default: ./.env if present)")
	rootCmd.PersistentFlags().StringVar(&opts.backendURL, "backend-url", "", "backend API base URL (overrides BACKEND_URL)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive terminal UI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "properties",
			Short: "List the property catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, app *internal.App) error {
					properties, err := app.Backend().ListProperties(ctx)
					if err != nil {
						return err
					}
					printProperties(cmd.OutOrStdout(), properties)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "List the users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, app *internal.App) error {
					users, err := app.Backend().ListUsers(ctx)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME")
					for _, u := range users {
						fmt.Fprintf(w, "%s\t%s\n", u.ID, u.Name)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "favorites <userId>",
			Short: "Print a user's favorite property ids",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, app *internal.App) error {
					ids, err := app.Backend().GetFavorites(ctx, args[0])
					if err != nil {
						return err
					}
					printFavorites(cmd.OutOrStdout(), ids)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <userId> <propertyId>",
			Short: "Add or remove a favorite and print the updated set",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, app *internal.App) error {
					ids, err := app.Backend().ToggleFavorite(ctx, args[0], args[1])
					if err != nil {
						return err
					}
					printFavorites(cmd.OutOrStdout(), ids)
					return nil
				})
			},
		},
	)
	return rootCmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	app, err := internal.NewApp(internal.Options{
		EnvPath:     opts.envPath,
		BackendURL:  opts.backendURL,
		Interactive: true,
	})
	if err != nil {
		return err
	}
	defer app.Close()
	return app.RunTUI(cmd.Context())
}

// withApp runs fn with a trace id and logger on the context, the way the
// coordinator does for its own operations.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *internal.App) error) error {
	app, err := internal.NewApp(internal.Options{
		EnvPath:    opts.envPath,
		BackendURL: opts.backendURL,
		LogWriter:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, logger := contextkeys.NewOperationContext(cmd.Context(), app.Logger(), cmd.Name())
	if err := fn(ctx, app); err != nil {
		logger.Error("Command failed", err, nil)
		return errors.New(domain.MessageOf(err, "Request failed"))
	}
	return nil
}

func printProperties(w io.Writer, properties []domain.Property) {
	if len(properties) == 0 {
		fmt.Fprintln(w, "No properties available")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLOCATION\tPRICE\tBEDS\tBATHS\tSQM")
	for _, p := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Title, p.Location, tui.FormatPrice(p.Price), p.Beds, p.Baths, tui.FormatArea(p.Sqm))
	}
	_ = tw.Flush()
}

func printFavorites(w io.Writer, ids []string) {
	set := domain.NewFavoriteSet(ids)
	if set.Len() == 0 {
		fmt.Fprintln(w, "No favorites")
		return
	}
	fmt.Fprintln(w, strings.Join(set.IDs(), "\n"))
}

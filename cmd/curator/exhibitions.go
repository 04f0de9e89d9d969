package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExhibitionsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exhibitions",
		Aliases: []string{"ex"},
		Short:   "Inspect a client's stored exhibitions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every exhibition of --client",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.exhibitions(cmd.Context())
			if err != nil {
				return err
			}
			exs, err := store.Load(cmd.Context(), c.client)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), exs)
		},
	}

	// Load migrates legacy keys as a side effect.
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Fold legacy per-museum exhibition keys of --client into the canonical key",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.exhibitions(cmd.Context())
			if err != nil {
				return err
			}
			exs, err := store.Load(cmd.Context(), c.client)
			if err != nil {
				return err
			}
			artworks := 0
			for _, e := range exs {
				artworks += len(e.Artworks)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d exhibitions, %d artworks stored for %s\n", len(exs), artworks, c.client)
			return nil
		},
	}

	cmd.AddCommand(list, migrate)
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/artwork"
	"curator/internal/exhibition"
)

var defaultSeed = []string{"aic:27992", "aic:28560", "met:436535", "met:437984"}

func newSeedCmd(c *cli) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "seed [source:id ...]",
		Short: "Create an exhibition for --client and fill it with artworks fetched from the museum APIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				ids = defaultSeed
			}
			identities := make([]artwork.Identity, 0, len(ids))
			for _, raw := range ids {
				id, err := artwork.ParseIdentity(raw)
				if err != nil {
					return err
				}
				identities = append(identities, id)
			}

			store, err := c.exhibitions(cmd.Context())
			if err != nil {
				return err
			}
			svc := exhibition.NewService(store, c.museums())

			e, err := store.Create(cmd.Context(), c.client, name)
			if err != nil {
				return err
			}
			for _, id := range identities {
				if e, err = svc.SaveArtwork(cmd.Context(), c.client, e.ID, id); err != nil {
					return fmt.Errorf("seed %s: %w", id, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exhibition %s %q: %d artworks\n", e.ID, e.Name, len(e.Artworks))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Seeded Exhibition", "Exhibition name")
	return cmd
}

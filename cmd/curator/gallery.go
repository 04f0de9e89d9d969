package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/artwork"
	"curator/internal/gallery"
)

func newGalleryCmd(c *cli) *cobra.Command {
	var (
		search   string
		filter   string
		sortFlag string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "gallery <aic|chicago|met>",
		Short: "Load a featured or searched gallery and print one page of it",
		Example: `  curator gallery met --filter artist="Vincent van Gogh" --sort oldest
  curator gallery chicago --search monet --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := artwork.ParseSource(args[0])
			if err != nil {
				return err
			}
			order, err := gallery.ParseSortOrder(sortFlag)
			if err != nil {
				return err
			}

			ctrl := gallery.NewController(source, c.museums(), pageSize, c.logger.Named("gallery"))
			if strings.TrimSpace(search) != "" {
				err = ctrl.Search(cmd.Context(), search)
			} else {
				err = ctrl.Load(cmd.Context())
			}
			if err != nil {
				return err
			}

			if filter != "" {
				name, value, ok := strings.Cut(filter, "=")
				if !ok {
					return fmt.Errorf("--filter must be field=value")
				}
				field, err := gallery.ParseField(name)
				if err != nil {
					return err
				}
				ctrl.SetFilter(field, value)
			}
			ctrl.SetSort(order)
			ctrl.SetPage(page)

			v := ctrl.View()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: page %d of %d (%d artworks)\n", source.Museum(), v.Page.Query.Page, v.Page.TotalPages, v.Page.TotalItems)
			for _, card := range v.Page.Cards {
				fmt.Fprintf(w, "  %-8s %s, %s (%s)\n", artwork.Identity{Source: card.Source, ID: card.ID}, card.Title, card.Artist, card.Year)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Search term instead of the featured listing")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter as field=value, field is artist or origin")
	cmd.Flags().StringVar(&sortFlag, "sort", string(gallery.Newest), "newest or oldest")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", gallery.DefaultPageSize, "Artworks per page")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/artwork"
	"curator/internal/exhibition"
	"curator/internal/share"
)

func newShareCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode, decode and resolve share links",
	}

	var exhibitionID string
	encode := &cobra.Command{
		Use:   "encode [source:id ...]",
		Short: "Print the share token and link for an exhibition or a list of artworks",
		Example: `  curator share encode aic:27992 met:436535
  curator share encode --client <id> --exhibition 1700000000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []share.Record
			switch {
			case exhibitionID != "":
				store, err := c.exhibitions(cmd.Context())
				if err != nil {
					return err
				}
				e, err := store.Get(cmd.Context(), c.client, exhibition.ID(exhibitionID))
				if err != nil {
					return err
				}
				records = share.Records(e.Artworks)
			case len(args) > 0:
				for _, arg := range args {
					id, err := artwork.ParseIdentity(arg)
					if err != nil {
						return err
					}
					records = append(records, share.Record{ID: id.ID, Source: id.Source})
				}
			default:
				return fmt.Errorf("pass artwork identities or --exhibition")
			}

			if len(records) > share.MaxRecords {
				return share.ErrTooManyRecords
			}
			token := share.EncodeRecords(records)
			link, err := share.Link(c.cfg.PublicBaseURL+"/v1/shared", token)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	encode.Flags().StringVar(&exhibitionID, "exhibition", "", "Stored exhibition id (requires --client)")

	decode := &cobra.Command{
		Use:   "decode <token>",
		Short: "Print the artwork records carried by a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), records)
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <token>",
		Short: "Fetch every artwork of a share token and print their cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			artworks, err := share.NewResolver(c.museums(), c.cfg.FetchConcurrency).Resolve(cmd.Context(), records)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), artwork.Cards(artworks))
		},
	}

	cmd.AddCommand(encode, decode, resolve)
	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/spellhub/internal/image"
	"github.com/youruser/spellhub/internal/team"
	"github.com/youruser/spellhub/internal/util"
)

var rootCmd = &cobra.Command{
	Use:          "teamcode",
	Short:        "Encode and decode shareable team tokens",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newEncodeCmd(), newDecodeCmd(), newQRCmd())
}

func newEncodeCmd() *cobra.Command {
	var name string
	var decks []string
	c := &cobra.Command{
		Use:   "encode",
		Short: "Build a team token from deck descriptions",
		Long: `Build a team token. Each --deck is a comma separated list:
spellcaster,slot1,slot2,slot3,slot4,slot5,name (trailing fields may be left out).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]team.DeckIdentity, 0, len(decks))
			for _, d := range decks {
				ids = append(ids, parseDeck(d))
			}
			fmt.Fprintln(cmd.OutOrStdout(), team.EncodeTeam(ids, name))
			return nil
		},
	}
	c.Flags().StringVarP(&name, "name", "n", "", "team name")
	c.Flags().StringArrayVarP(&decks, "deck", "d", nil, "deck fields, repeatable (max 3)")
	return c
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Print the team held by a token as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := team.DecodeTeam(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		},
	}
}

func newQRCmd() *cobra.Command {
	var out, base string
	var size int
	c := &cobra.Command{
		Use:   "qr TOKEN",
		Short: "Write a QR code PNG for a token's share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := team.DecodeTeam(args[0])
			if err != nil {
				return err
			}
			text := team.Encode(t)
			if base != "" {
				if text, err = team.ShareURL(base, text); err != nil {
					return err
				}
			}
			b, err := imagepkg.GenerateQRPNG(text, size)
			if err != nil {
				return err
			}
			if err := util.WriteFile(out, b); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "team-qr.png", "output PNG path")
	c.Flags().StringVar(&base, "base", "", "share link base URL; the bare token is encoded when empty")
	c.Flags().IntVar(&size, "size", 400, "image side in pixels")
	return c
}

func parseDeck(s string) team.DeckIdentity {
	parts := strings.SplitN(s, ",", 1+team.SlotCount+1)
	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	d := team.DeckIdentity{SpellcasterID: field(0), Name: field(1 + team.SlotCount)}
	for i := range d.SlotIDs {
		d.SlotIDs[i] = field(1 + i)
	}
	return d
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openbadger/badgekit/pkg/qrcode"
	"github.com/openbadger/badgekit/pkg/screen"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

func newBadgesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List the badge catalog, owned badges first when logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var expired bool
			catalog := screen.NewCatalog(a.client, a.store, func() { expired = true })
			catalog.Load(cmd.Context())

			state := catalog.State()
			if expired {
				return errSessionExpired
			}
			if state.Phase != viewstate.PhaseSuccess {
				return fmt.Errorf("%s", state.Message)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLEVEL\tHOLDERS\tOWNED")
			for _, b := range state.Data.Badges {
				level := "-"
				if b.Level != nil {
					level = *b.Level
				}
				owned := ""
				if state.Data.OwnedIDs[b.ID] {
					owned = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Name, level, b.Holders, owned)
			}
			return w.Flush()
		},
	}
}

func newBadgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Inspect a single badge",
	}
	cmd.AddCommand(newBadgeShowCmd(a), newBadgeQRCmd(a))
	return cmd
}

func newBadgeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a badge with its earner count and related badges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid badge id %q", args[0])
			}

			detail := screen.NewDetail(a.client, a.store, id, nil)
			detail.Load(cmd.Context())

			state := detail.State()
			if state.Phase != viewstate.PhaseSuccess {
				return fmt.Errorf("%s", state.Message)
			}

			b, ok := state.Data.Current()
			if !ok {
				return fmt.Errorf("badge %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", b.Name, b.ID)
			fmt.Fprintln(out, b.Description)
			if b.Category != nil {
				fmt.Fprintln(out, "Category:", *b.Category)
			}
			if b.Level != nil {
				fmt.Fprintln(out, "Level:", *b.Level)
			}
			if b.Vertical != nil {
				fmt.Fprintln(out, "Vertical:", *b.Vertical)
			}
			fmt.Fprintln(out, "Launched:", b.YearLaunched)
			fmt.Fprintln(out, "Earners:", detail.Earners())

			if related := state.Data.Related(); len(related) > 0 {
				fmt.Fprintln(out, "Related:")
				for _, r := range related {
					fmt.Fprintf(out, "  %s (#%d)\n", r.Name, r.ID)
				}
			}
			return nil
		},
	}
}

func newBadgeQRCmd(a *app) *cobra.Command {
	var (
		output string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "qr <id>",
		Short: "Write a QR code PNG linking to your earned badge certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid badge id %q", args[0])
			}

			sess, err := a.requireSession(cmd)
			if err != nil {
				return err
			}
			user, err := a.client.CurrentUser(cmd.Context(), sess.Token)
			if err != nil {
				return a.clearOnUnauthorized(cmd, err)
			}

			var certificate string
			for _, ub := range user.Badges {
				if ub.BadgeID == id && ub.CertificateID != nil {
					certificate = *ub.CertificateID
					break
				}
			}
			if certificate == "" {
				return fmt.Errorf("no certificate for badge %d on this account", id)
			}

			png, err := qrcode.Share(a.shareBase, certificate, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "badge-qr.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 256, "image edge size in pixels")
	return cmd
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/screen"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the signed-in profile",
	}
	cmd.AddCommand(newProfileShowCmd(a), newProfileEditCmd(a), newProfileRemoveImageCmd(a))
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user's profile and earned badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			var expired bool
			prof := screen.NewProfile(a.client, a.store, func() { expired = true })
			prof.Load(cmd.Context())

			state := prof.State()
			if expired {
				return errSessionExpired
			}
			if state.Phase != viewstate.PhaseSuccess {
				return fmt.Errorf("%s", state.Message)
			}

			data := state.Data
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s <%s>\n", data.User.FirstName, data.User.LastName, data.User.Email)
			if data.User.Image == nil {
				fmt.Fprintln(out, "Avatar: none (initials", data.Initials+")")
			}

			if len(data.User.Badges) == 0 {
				fmt.Fprintln(out, "No badges earned yet")
				return nil
			}
			fmt.Fprintln(out, "Badges:")
			for _, ub := range data.User.Badges {
				name := fmt.Sprintf("#%d", ub.BadgeID)
				if ub.Name != nil {
					name = *ub.Name
				}
				visibility := "private"
				if ub.IsPublic {
					visibility = "public"
				}
				fmt.Fprintf(out, "  %s (%s)\n", name, visibility)
			}
			if selected, ok := data.SelectedBadge(); ok {
				fmt.Fprintf(out, "Showcased: %s, %s earners\n", selected.Name, prof.Earners())
			}
			return nil
		},
	}
}

func newProfileEditCmd(a *app) *cobra.Command {
	var (
		firstName       string
		lastName        string
		currentPassword string
		newPassword     string
		imagePath       string
		publicBadges    []int
		privateBadges   []int
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update names, password, badge visibility or the avatar image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			var expired bool
			editor := screen.NewEditor(a.client, a.store, func() { expired = true })
			editor.Load(cmd.Context())
			if expired {
				return errSessionExpired
			}
			if state := editor.State(); state.Phase != viewstate.PhaseSuccess {
				return fmt.Errorf("%s", state.Message)
			}

			editor.Apply(func(form *screen.EditForm) {
				if cmd.Flags().Changed("first-name") {
					form.FirstName = firstName
				}
				if cmd.Flags().Changed("last-name") {
					form.LastName = lastName
				}
				form.CurrentPassword = currentPassword
				form.NewPassword = newPassword
			})
			for _, id := range publicBadges {
				editor.SetBadgeVisibility(id, true)
			}
			for _, id := range privateBadges {
				editor.SetBadgeVisibility(id, false)
			}

			if imagePath != "" {
				img, err := readImage(imagePath)
				if err != nil {
					return err
				}
				editor.Apply(func(form *screen.EditForm) {
					form.PickedImage = img
				})
			}

			message, err := editor.Save(cmd.Context())
			if expired {
				return errSessionExpired
			}
			if err != nil {
				return err
			}
			if message == "" {
				message = "Profile updated"
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&currentPassword, "current-password", "", "current password (required when changing the password)")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password, minimum 8 characters")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a new avatar image")
	cmd.Flags().IntSliceVar(&publicBadges, "make-public", nil, "badge ids to make publicly visible")
	cmd.Flags().IntSliceVar(&privateBadges, "make-private", nil, "badge ids to hide from the public profile")
	return cmd
}

func newProfileRemoveImageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-image",
		Short: "Delete the stored avatar image",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd)
			if err != nil {
				return err
			}
			if err := a.client.RemoveProfileImage(cmd.Context(), sess.Token); err != nil {
				return a.clearOnUnauthorized(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile image removed")
			return nil
		},
	}
}

// readImage loads an avatar file and sniffs its content type from the first
// bytes.
func readImage(path string) (*apiclient.ImageUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return &apiclient.ImageUpload{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openbadger/badgekit/pkg/authflow"
)

// prompt reads one line from the command's input stream.
func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = prompt(cmd, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			flow := authflow.NewLogin(a.client, a.store)
			if err := flow.Submit(cmd.Context(), email, password); err != nil {
				if msg := flow.ErrorMessage(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in as", strings.TrimSpace(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account via emailed one-time code",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = prompt(cmd, "Email: "); err != nil {
					return err
				}
			}

			flow := authflow.NewRegistration(a.client)
			if err := flow.SendOTP(cmd.Context(), email); err != nil {
				if msg := flow.ErrorMessage(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OTP sent to", flow.PendingEmail())

			firstName, err := prompt(cmd, "First name: ")
			if err != nil {
				return err
			}
			lastName, err := prompt(cmd, "Last name: ")
			if err != nil {
				return err
			}
			otp, err := prompt(cmd, "OTP: ")
			if err != nil {
				return err
			}
			password, err := prompt(cmd, "Password: ")
			if err != nil {
				return err
			}

			if err := flow.Finalize(cmd.Context(), firstName, lastName, otp, password); err != nil {
				if msg := flow.ErrorMessage(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration complete; run `badgectl login` to sign in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a forgotten password via emailed one-time code",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = prompt(cmd, "Email: "); err != nil {
					return err
				}
			}

			flow := authflow.NewReset(a.client)
			if err := flow.SendOTP(cmd.Context(), email); err != nil {
				if msg := flow.ErrorMessage(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OTP sent to", flow.PendingEmail())

			otp, err := prompt(cmd, "OTP: ")
			if err != nil {
				return err
			}
			newPassword, err := prompt(cmd, "New password: ")
			if err != nil {
				return err
			}

			if err := flow.Finalize(cmd.Context(), otp, newPassword); err != nil {
				if msg := flow.ErrorMessage(); msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password reset; run `badgectl login` to sign in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

package cli

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/validate"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		Long:  "Exchange email and password for a session token, stored under the state directory for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := bufio.NewReader(cmd.InOrStdin())

			var err error
			if email == "" {
				if email, err = promptLine(cmd.OutOrStdout(), stdin, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine(cmd.OutOrStdout(), stdin, "Password: "); err != nil {
					return err
				}
			}

			if err := forms.Check(validate.LoginInput{Email: email, Password: password}); err != nil {
				return err
			}

			resp, err := controller.Login(cmd.Context(), email, password)
			if err != nil {
				return friendlyErr(err)
			}

			printer.Success("Logged in as %s (%s)", resp.User.FullName(), resp.User.Email)
			printer.Info("Session expires at %s", resp.ExpiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Long:  "Invalidate the session server-side (best effort) and clear the locally stored credential.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := controller.Logout(cmd.Context()); err != nil {
				return err
			}
			printer.Success("Logged out")
			return nil
		},
	}
}

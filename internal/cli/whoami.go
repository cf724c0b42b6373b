package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Long:  "Validate the stored credential against the server and print the signed-in account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := controller.Restore(cmd.Context()); err != nil {
				return err
			}

			state := controller.State()
			if !state.Authenticated {
				return fmt.Errorf("not logged in, run 'adminctl login'")
			}

			cred := store.Credential()
			fmt.Fprintf(cmd.OutOrStdout(), "User:    %s\n", state.User.FullName())
			fmt.Fprintf(cmd.OutOrStdout(), "Email:   %s\n", state.User.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Active:  %v\n", state.User.Active)
			fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s (in %s)\n",
				cred.ExpiresAt.Format(time.RFC3339), cred.Remaining().Round(time.Second))
			return nil
		},
	}
}

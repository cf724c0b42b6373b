package cli

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and control the session lifecycle",
	}
	cmd.AddCommand(
		newSessionStatusCmd(),
		newSessionRefreshCmd(),
		newSessionEndCmd(),
		newSessionWatchCmd(),
	)
	return cmd
}

func newSessionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without contacting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := controller.State()
			if !state.Authenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored session.")
				return nil
			}

			cred := store.Credential()
			fmt.Fprintf(cmd.OutOrStdout(), "User:    %s <%s>\n", state.User.FullName(), state.User.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s\n", cred.ExpiresAt.Format(time.RFC3339))
			if cred.IsExpired() {
				fmt.Fprintln(cmd.OutOrStdout(), "Status:  expired (server may reject the token)")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Status:  valid for %s\n", cred.Remaining().Round(time.Second))
			}
			return nil
		},
	}
}

func newSessionRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the session credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := controller.ContinueSession(cmd.Context()); err != nil {
				return friendlyErr(err)
			}
			printer.Success("Session renewed until %s",
				store.Credential().ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Decline renewal and close the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := controller.CancelSession(cmd.Context()); err != nil {
				return err
			}
			printer.Success("Session closed")
			return nil
		},
	}
}

// newSessionWatchCmd keeps the process alive so the expiry timer runs,
// and turns the controller's prompt into an interactive question — the
// terminal equivalent of the console's "your session is about to
// expire" dialog.
func newSessionWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Hold the session open, answering expiry prompts interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := controller.Restore(ctx); err != nil {
				return err
			}
			if !controller.State().Authenticated {
				return fmt.Errorf("not logged in, run 'adminctl login'")
			}

			stdin := bufio.NewReader(cmd.InOrStdin())
			states := make(chan session.State, 8)
			cancel := controller.Subscribe(func(s session.State) {
				select {
				case states <- s:
				default:
				}
			})
			defer cancel()

			printer.Info("Session held open for %s. Press ctrl-c to stop.",
				store.Credential().Remaining().Round(time.Second))

			for {
				select {
				case <-ctx.Done():
					return nil
				case s := <-states:
					switch {
					case !s.Authenticated:
						printer.Warn("Session ended")
						return nil
					case s.PromptPending:
						if confirm(cmd.OutOrStdout(), stdin, "Session is about to expire. Continue?") {
							if err := controller.ContinueSession(ctx); err != nil {
								return friendlyErr(err)
							}
							printer.Success("Session renewed")
						} else {
							if err := controller.CancelSession(ctx); err != nil {
								return err
							}
							printer.Info("Session closed")
							return nil
						}
					}
				}
			}
		},
	}
}

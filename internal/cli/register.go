package cli

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/validate"
	"github.com/me/adminctl/pkg/model"
)

func newRegisterCmd() *cobra.Command {
	var in validate.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create an account on the administration API. Registration does not log the new account in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := bufio.NewReader(cmd.InOrStdin())

			var err error
			if in.Password == "" {
				if in.Password, err = promptLine(cmd.OutOrStdout(), stdin, "Password: "); err != nil {
					return err
				}
				if in.ConfirmPassword, err = promptLine(cmd.OutOrStdout(), stdin, "Confirm password: "); err != nil {
					return err
				}
			} else if in.ConfirmPassword == "" {
				in.ConfirmPassword = in.Password
			}

			if err := forms.Check(in); err != nil {
				return err
			}

			resp, err := controller.Register(cmd.Context(), model.UserForm{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Phone:     in.Phone,
				BirthDate: in.BirthDate,
				Address:   in.Address,
				Password:  in.Password,
			})
			if err != nil {
				return friendlyErr(err)
			}

			email := in.Email
			if resp.User != nil && resp.User.Email != "" {
				email = resp.User.Email
			}
			printer.Success("Account created for %s", email)
			printer.Info("Run 'adminctl login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.BirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted twice if omitted)")
	return cmd
}

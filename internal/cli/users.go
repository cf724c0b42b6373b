package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/output"
	"github.com/me/adminctl/internal/validate"
	"github.com/me/adminctl/pkg/model"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(
		newUsersListCmd(),
		newUsersGetCmd(),
		newUsersCreateCmd(),
		newUsersUpdateCmd(),
		newUsersDeleteCmd(),
	)
	return cmd
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return friendlyErr(err)
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}

			table := output.NewTableWithWriter(cmd.OutOrStdout(),
				[]string{"ID", "Name", "Email", "Phone", "Active", "Created"})
			for _, u := range users {
				active := "no"
				if u.Active {
					active = "yes"
				}
				created := ""
				if !u.CreatedAt.IsZero() {
					created = u.CreatedAt.Format("2006-01-02")
				}
				table.AddRow([]string{
					strconv.FormatInt(u.ID, 10),
					u.FullName(),
					u.Email,
					u.Phone,
					active,
					created,
				})
			}
			table.Render()
			return nil
		},
	}
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			u, err := client.GetUser(cmd.Context(), id)
			if err != nil {
				return friendlyErr(err)
			}
			printUser(cmd, u)
			return nil
		},
	}
}

func printUser(cmd *cobra.Command, u *model.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %d\n", u.ID)
	fmt.Fprintf(out, "Name:       %s\n", u.FullName())
	fmt.Fprintf(out, "Email:      %s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(out, "Phone:      %s\n", u.Phone)
	}
	if u.BirthDate != "" {
		fmt.Fprintf(out, "Birth date: %s\n", u.BirthDate)
	}
	if u.Address != "" {
		fmt.Fprintf(out, "Address:    %s\n", u.Address)
	}
	fmt.Fprintf(out, "Active:     %t\n", u.Active)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Created:    %s\n", u.CreatedAt.Format(time.RFC3339))
	}
}

func newUsersCreateCmd() *cobra.Command {
	var (
		firstName string
		lastName  string
		email     string
		phone     string
		birthDate string
		address   string
		password  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := validate.RegisterInput{
				FirstName:       firstName,
				LastName:        lastName,
				Email:           email,
				Phone:           phone,
				BirthDate:       birthDate,
				Address:         address,
				Password:        password,
				ConfirmPassword: password,
			}
			if err := forms.Check(input); err != nil {
				return err
			}

			u, err := client.CreateUser(cmd.Context(), model.UserForm{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Phone:     phone,
				BirthDate: birthDate,
				Address:   address,
				Password:  password,
			})
			if err != nil {
				return friendlyErr(err)
			}
			printer.Success("Created user %d (%s)", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var (
		firstName string
		lastName  string
		email     string
		phone     string
		birthDate string
		address   string
		password  string
		active    string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			input := validate.UpdateInput{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Phone:     phone,
				BirthDate: birthDate,
				Address:   address,
				Password:  password,
			}
			if err := forms.Check(input); err != nil {
				return err
			}

			form := model.UserForm{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Phone:     phone,
				BirthDate: birthDate,
				Address:   address,
				Password:  password,
			}
			if active != "" {
				v, err := strconv.ParseBool(active)
				if err != nil {
					return fmt.Errorf("invalid --active value %q", active)
				}
				form.Active = &v
			}

			u, err := client.UpdateUser(cmd.Context(), id, form)
			if err != nil {
				return friendlyErr(err)
			}
			printer.Success("Updated user %d", u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&active, "active", "", "set account active state (true/false)")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			if !force {
				q := fmt.Sprintf("Delete user %d?", id)
				if !confirm(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), q) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			msg, err := client.DeleteUser(cmd.Context(), id)
			if err != nil {
				return friendlyErr(err)
			}
			if msg == "" {
				msg = fmt.Sprintf("Deleted user %d", id)
			}
			printer.Success("%s", msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

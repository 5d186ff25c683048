package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginEmail string
var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the Roomify backend",
	RunE: open(func(ctx context.Context, a *app, _ []string) error {
		email := loginEmail
		if email == "" {
			var err error
			if email, err = prompt("Email: "); err != nil {
				return err
			}
		}

		password := loginPassword
		if password == "" {
			password = os.Getenv("ROOMIFY_PASSWORD")
		}
		if password == "" {
			var err error
			if password, err = prompt("Password: "); err != nil {
				return err
			}
		}

		profile, err := a.controller.Login(ctx, email, password)
		if err != nil {
			return err
		}

		role, _ := profile.PrimaryRole()
		fmt.Printf("Logged in as %s (%s)\n", profile.Username, role)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the cached session",
	RunE: open(func(ctx context.Context, a *app, _ []string) error {
		a.controller.Logout(ctx)
		fmt.Println("Logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: guarded(routeWhoami, func(_ context.Context, a *app, _ []string) error {
		user := a.controller.User()
		fmt.Printf("Username: %s\nEmail:    %s\nRoles:    %s\n",
			user.Username, user.Email, strings.Join(user.Roles, ", "))
		return nil
	}),
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "u", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (or ROOMIFY_PASSWORD)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roomify/go-session/api"
)

var (
	staffEmail      string
	staffName       string
	staffDepartment string
	staffActive     string
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts (managers only)",
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	RunE: guarded(routeStaff, func(ctx context.Context, a *app, _ []string) error {
		members, err := a.api.ListStaff(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT\tACTIVE")
		for _, m := range members {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", m.ID, m.Name, m.Email, m.Department, m.Active)
		}
		return w.Flush()
	}),
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	RunE: guarded(routeStaff, func(ctx context.Context, a *app, _ []string) error {
		member, err := a.api.CreateStaff(ctx, api.StaffCreateRequest{
			Email:      staffEmail,
			Name:       staffName,
			Department: staffDepartment,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created staff account %d (%s)\n", member.ID, member.Email)
		return nil
	}),
}

var staffUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeStaff, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid staff id %q", args[0])
		}

		req := api.StaffUpdateRequest{
			Name:       staffName,
			Department: staffDepartment,
		}
		if staffActive != "" {
			active, err := strconv.ParseBool(staffActive)
			if err != nil {
				return fmt.Errorf("invalid --active value %q", staffActive)
			}
			req.Active = &active
		}

		member, err := a.api.UpdateStaff(ctx, id, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated staff account %d (%s)\n", member.ID, member.Email)
		return nil
	}),
}

var staffDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeStaff, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid staff id %q", args[0])
		}

		if err := a.api.DeleteStaff(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted staff account %d\n", id)
		return nil
	}),
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	RunE: open(func(ctx context.Context, a *app, _ []string) error {
		health, err := a.api.CheckHealth(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Backend status: %s\n", health.Status)
		return nil
	}),
}

func init() {
	staffCreateCmd.Flags().StringVar(&staffEmail, "email", "", "staff email")
	staffCreateCmd.Flags().StringVar(&staffName, "name", "", "staff name")
	staffCreateCmd.Flags().StringVar(&staffDepartment, "department", "", "department")

	staffUpdateCmd.Flags().StringVar(&staffName, "name", "", "staff name")
	staffUpdateCmd.Flags().StringVar(&staffDepartment, "department", "", "department")
	staffUpdateCmd.Flags().StringVar(&staffActive, "active", "", "true or false")

	staffCmd.AddCommand(staffListCmd)
	staffCmd.AddCommand(staffCreateCmd)
	staffCmd.AddCommand(staffUpdateCmd)
	staffCmd.AddCommand(staffDeleteCmd)

	rootCmd.AddCommand(staffCmd)
	rootCmd.AddCommand(healthCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roomify/go-session/api"
)

var roomTypeReq api.RoomTypeRequest

var roomTypesCmd = &cobra.Command{
	Use:   "room-types",
	Short: "Manage the room-type catalogue",
}

var roomTypesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List room types",
	RunE: guarded(routeRoomTypes, func(ctx context.Context, a *app, _ []string) error {
		types, err := a.api.ListRoomTypes(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tGUESTS\tAMENITIES")
		for _, rt := range types {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\n",
				rt.ID, rt.Name, rt.BasePrice, rt.MaxGuests, strings.Join(rt.AmenityList(), ", "))
		}
		return w.Flush()
	}),
}

var roomTypesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a room type",
	RunE: guarded(routeRoomTypes, func(ctx context.Context, a *app, _ []string) error {
		rt, err := a.api.CreateRoomType(ctx, roomTypeReq)
		if err != nil {
			return err
		}
		fmt.Printf("Created room type %d (%s)\n", rt.ID, rt.Name)
		return nil
	}),
}

var roomTypesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a room type",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeRoomTypes, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid room type id %q", args[0])
		}

		rt, err := a.api.UpdateRoomType(ctx, id, roomTypeReq)
		if err != nil {
			return err
		}
		fmt.Printf("Updated room type %d (%s)\n", rt.ID, rt.Name)
		return nil
	}),
}

var roomTypesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a room type",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeRoomTypes, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid room type id %q", args[0])
		}

		if err := a.api.DeleteRoomType(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted room type %d\n", id)
		return nil
	}),
}

func roomTypeFlags(c *cobra.Command) {
	c.Flags().StringVar(&roomTypeReq.Name, "name", "", "room type name")
	c.Flags().Float64Var(&roomTypeReq.BasePrice, "price", 0, "base price per night")
	c.Flags().IntVar(&roomTypeReq.MaxGuests, "guests", 2, "maximum guests")
	c.Flags().StringVar(&roomTypeReq.Amenities, "amenities", "", "comma-separated amenities")
	c.Flags().StringVar(&roomTypeReq.Description, "description", "", "description")
}

func init() {
	roomTypeFlags(roomTypesCreateCmd)
	roomTypeFlags(roomTypesUpdateCmd)

	roomTypesCmd.AddCommand(roomTypesListCmd)
	roomTypesCmd.AddCommand(roomTypesCreateCmd)
	roomTypesCmd.AddCommand(roomTypesUpdateCmd)
	roomTypesCmd.AddCommand(roomTypesDeleteCmd)

	rootCmd.AddCommand(roomTypesCmd)
}

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
	roomNumber string
	roomTypeID int64
	roomFloor  int
	roomStatus string
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Manage rooms",
}

var roomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rooms",
	RunE: guarded(routeRooms, func(ctx context.Context, a *app, _ []string) error {
		rooms, err := a.api.ListRooms(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tFLOOR\tSTATUS")
		for _, r := range rooms {
			typeName := ""
			if r.RoomType != nil {
				typeName = r.RoomType.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.RoomNumber, typeName, r.Floor, r.Status)
		}
		return w.Flush()
	}),
}

var roomsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a room",
	RunE: guarded(routeRooms, func(ctx context.Context, a *app, _ []string) error {
		room, err := a.api.CreateRoom(ctx, roomRequest())
		if err != nil {
			return err
		}
		fmt.Printf("Created room %d (%s)\n", room.ID, room.RoomNumber)
		return nil
	}),
}

var roomsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a room",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeRooms, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid room id %q", args[0])
		}

		room, err := a.api.UpdateRoom(ctx, id, roomRequest())
		if err != nil {
			return err
		}
		fmt.Printf("Updated room %d (%s)\n", room.ID, room.RoomNumber)
		return nil
	}),
}

var roomsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a room",
	Args:  cobra.ExactArgs(1),
	RunE: guarded(routeRooms, func(ctx context.Context, a *app, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid room id %q", args[0])
		}

		if err := a.api.DeleteRoom(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted room %d\n", id)
		return nil
	}),
}

func roomRequest() api.RoomRequest {
	return api.RoomRequest{
		RoomNumber: roomNumber,
		RoomTypeID: roomTypeID,
		Floor:      roomFloor,
		Status:     api.RoomStatus(roomStatus),
	}
}

func roomFlags(c *cobra.Command) {
	c.Flags().StringVar(&roomNumber, "number", "", "room number")
	c.Flags().Int64Var(&roomTypeID, "type", 0, "room type id")
	c.Flags().IntVar(&roomFloor, "floor", 0, "floor")
	c.Flags().StringVar(&roomStatus, "status", string(api.RoomAvailable),
		"AVAILABLE, OCCUPIED, MAINTENANCE or OUT_OF_SERVICE")
}

func init() {
	roomFlags(roomsCreateCmd)
	roomFlags(roomsUpdateCmd)

	roomsCmd.AddCommand(roomsListCmd)
	roomsCmd.AddCommand(roomsCreateCmd)
	roomsCmd.AddCommand(roomsUpdateCmd)
	roomsCmd.AddCommand(roomsDeleteCmd)

	rootCmd.AddCommand(roomsCmd)
}

package api_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomify/go-session/api"
	"github.com/roomify/go-session/mockapi"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func startBackend(t *testing.T, opts ...mockapi.Option) (*mockapi.Server, string) {
	t.Helper()

	server := mockapi.New(opts...)
	base, shutdown, err := server.Start()
	require.NoError(t, err)
	t.Cleanup(shutdown)
	return server, base
}

func clientAs(t *testing.T, server *mockapi.Server, base, email string, roles ...string) *api.Client {
	t.Helper()

	token, err := server.MintToken(email, time.Hour, roles...)
	require.NoError(t, err)
	return api.NewClient(base, staticToken(token))
}

func TestListRoomTypesSeeded(t *testing.T) {
	server, base := startBackend(t)
	client := clientAs(t, server, base, "admin@roomify.test", "ROLE_MANAGER")

	types, err := client.ListRoomTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 4)

	assert.Equal(t, "Standard Room", types[0].Name)
	assert.Equal(t, 99.99, types[0].BasePrice)
	assert.Equal(t,
		[]string{"WiFi", "TV", "Air Conditioning"},
		types[0].AmenityList())
}

func TestRoomTypeCRUD(t *testing.T) {
	ctx := context.Background()
	server, base := startBackend(t)
	client := clientAs(t, server, base, "admin@roomify.test", "ROLE_MANAGER")

	created, err := client.CreateRoomType(ctx, api.RoomTypeRequest{
		Name:        "Penthouse",
		BasePrice:   899.99,
		MaxGuests:   4,
		Amenities:   "WiFi,Terrace",
		Description: "Top floor.",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := client.GetRoomType(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Penthouse", fetched.Name)

	updated, err := client.UpdateRoomType(ctx, created.ID, api.RoomTypeRequest{
		Name:        "Penthouse Suite",
		BasePrice:   999.99,
		MaxGuests:   4,
		Amenities:   "WiFi,Terrace,Jacuzzi",
		Description: "Top floor.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Penthouse Suite", updated.Name)
	assert.Equal(t, 999.99, updated.BasePrice)

	require.NoError(t, client.DeleteRoomType(ctx, created.ID))

	_, err = client.GetRoomType(ctx, created.ID)
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryNotFound, richErr.Category)
}

func TestRoomCRUD(t *testing.T) {
	ctx := context.Background()
	server, base := startBackend(t)
	client := clientAs(t, server, base, "admin@roomify.test", "ROLE_MANAGER")

	types, err := client.ListRoomTypes(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, types)

	created, err := client.CreateRoom(ctx, api.RoomRequest{
		RoomNumber: "101",
		RoomTypeID: types[0].ID,
		Floor:      1,
		Status:     api.RoomAvailable,
	})
	require.NoError(t, err)
	require.NotNil(t, created.RoomType)
	assert.Equal(t, types[0].ID, created.RoomType.ID)

	updated, err := client.UpdateRoom(ctx, created.ID, api.RoomRequest{
		RoomNumber: "101",
		RoomTypeID: types[0].ID,
		Floor:      1,
		Status:     api.RoomMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, api.RoomMaintenance, updated.Status)

	rooms, err := client.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	require.NoError(t, client.DeleteRoom(ctx, created.ID))

	rooms, err = client.ListRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestStaffCRUDRequiresManager(t *testing.T) {
	ctx := context.Background()
	server, base := startBackend(t)

	manager := clientAs(t, server, base, "admin@roomify.test", "ROLE_MANAGER")

	created, err := manager.CreateStaff(ctx, api.StaffCreateRequest{
		Email:      "frontdesk@roomify.test",
		Name:       "Front Desk",
		Department: "Reception",
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	inactive := false
	updated, err := manager.UpdateStaff(ctx, created.ID, api.StaffUpdateRequest{
		Department: "Housekeeping",
		Active:     &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Housekeeping", updated.Department)
	assert.False(t, updated.Active)

	listed, err := manager.ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, manager.DeleteStaff(ctx, created.ID))

	staff := clientAs(t, server, base, "staff@roomify.test", "ROLE_STAFF")
	_, err = staff.ListStaff(ctx)
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryAuthz, richErr.Category)
}

func TestMissingTokenUnauthorized(t *testing.T) {
	_, base := startBackend(t)
	client := api.NewClient(base, staticToken(""))

	_, err := client.ListRooms(context.Background())
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryAuth, richErr.Category)
}

func TestCheckHealthNeedsNoToken(t *testing.T) {
	_, base := startBackend(t)
	client := api.NewClient(base, nil)

	health, err := client.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UP", health.Status)
}

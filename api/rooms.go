package api

import (
	"context"
	"fmt"
	"net/http"
)

const roomsPath = "/rooms"

// RoomStatus mirrors the backend enum.
type RoomStatus string

const (
	RoomAvailable    RoomStatus = "AVAILABLE"
	RoomOccupied     RoomStatus = "OCCUPIED"
	RoomMaintenance  RoomStatus = "MAINTENANCE"
	RoomOutOfService RoomStatus = "OUT_OF_SERVICE"
)

// Room is an individual hotel room. Responses embed the full room type;
// requests reference it by id.
type Room struct {
	ID         int64      `json:"id"`
	RoomNumber string     `json:"roomNumber"`
	RoomType   *RoomType  `json:"roomType,omitempty"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
}

// RoomRequest is the create/update payload.
type RoomRequest struct {
	RoomNumber string     `json:"roomNumber"`
	RoomTypeID int64      `json:"roomTypeId"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
}

func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var out []Room
	if err := c.do(ctx, http.MethodGet, roomsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRoom(ctx context.Context, id int64) (*Room, error) {
	out := &Room{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", roomsPath, id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRoom(ctx context.Context, req RoomRequest) (*Room, error) {
	out := &Room{}
	if err := c.do(ctx, http.MethodPost, roomsPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, req RoomRequest) (*Room, error) {
	out := &Room{}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", roomsPath, id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", roomsPath, id), nil, nil)
}

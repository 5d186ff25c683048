package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const roomTypesPath = "/room-types"

// RoomType is a rentable room category. Amenities travel as a
// comma-separated string, exactly as the backend stores them; use
// AmenityList for a usable slice.
type RoomType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"basePrice"`
	MaxGuests   int     `json:"maxGuests"`
	Amenities   string  `json:"amenities"`
	Description string  `json:"description"`
}

// AmenityList splits the comma-separated amenities field, dropping empty
// segments.
func (rt RoomType) AmenityList() []string {
	parts := strings.Split(rt.Amenities, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

// RoomTypeRequest is the create/update payload.
type RoomTypeRequest struct {
	Name        string  `json:"name"`
	BasePrice   float64 `json:"basePrice"`
	MaxGuests   int     `json:"maxGuests"`
	Amenities   string  `json:"amenities"`
	Description string  `json:"description"`
}

func (c *Client) ListRoomTypes(ctx context.Context) ([]RoomType, error) {
	var out []RoomType
	if err := c.do(ctx, http.MethodGet, roomTypesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRoomType(ctx context.Context, id int64) (*RoomType, error) {
	out := &RoomType{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", roomTypesPath, id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRoomType(ctx context.Context, req RoomTypeRequest) (*RoomType, error) {
	out := &RoomType{}
	if err := c.do(ctx, http.MethodPost, roomTypesPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRoomType(ctx context.Context, id int64, req RoomTypeRequest) (*RoomType, error) {
	out := &RoomType{}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", roomTypesPath, id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteRoomType(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", roomTypesPath, id), nil, nil)
}

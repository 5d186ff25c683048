package mockapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	session "github.com/roomify/go-session"
	"github.com/roomify/go-session/api"
)

const rolesLocal = "roles"

func (s *Server) routes() {
	g := s.app.Group("/api")

	g.Post("/auth/login", s.handleLogin)
	g.Get("/health", s.handleHealth)

	roomTypes := g.Group("/room-types", s.requireAuth)
	roomTypes.Get("/", s.listRoomTypes)
	roomTypes.Get("/:id", s.getRoomType)
	roomTypes.Post("/", s.createRoomType)
	roomTypes.Put("/:id", s.updateRoomType)
	roomTypes.Delete("/:id", s.deleteRoomType)

	rooms := g.Group("/rooms", s.requireAuth)
	rooms.Get("/", s.listRooms)
	rooms.Get("/:id", s.getRoom)
	rooms.Post("/", s.createRoom)
	rooms.Put("/:id", s.updateRoom)
	rooms.Delete("/:id", s.deleteRoom)

	staff := g.Group("/staff", s.requireAuth, s.requireRole(session.RoleManager))
	staff.Get("/", s.listStaff)
	staff.Post("/", s.createStaff)
	staff.Put("/:id", s.updateStaff)
	staff.Delete("/:id", s.deleteStaff)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	payload := struct {
		Identifier string `json:"identifier"`
		Secret     string `json:"secret"`
	}{}

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Malformed login payload",
		})
	}

	s.mu.Lock()
	acct := s.accounts[strings.ToLower(payload.Identifier)]
	s.mu.Unlock()

	if acct == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(payload.Secret)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	token, err := s.signToken(acct.email, s.tokenTTL, acct.roles)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to issue token",
		})
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"type":     "Bearer",
		"id":       acct.id,
		"username": acct.username,
		"email":    acct.email,
		"roles":    acct.roles,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "UP"})
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	const scheme = "Bearer "
	if !strings.HasPrefix(header, scheme) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing bearer token",
		})
	}

	parsed, err := jwt.Parse(header[len(scheme):], func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	c.Locals(rolesLocal, claimRoles(claims))
	return c.Next()
}

func (s *Server) requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(rolesLocal).([]string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
		})
	}
}

func claimRoles(claims jwt.MapClaims) []string {
	switch v := claims["roles"].(type) {
	case []any:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	case string:
		return []string{v}
	}

	if role, ok := claims["role"].(string); ok && role != "" {
		return []string{role}
	}

	return nil
}

func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": what + " not found",
	})
}

// room types

func (s *Server) listRoomTypes(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.RoomType, 0, len(s.roomTypes))
	for _, rt := range s.roomTypes {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (s *Server) getRoomType(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room type")
	}

	s.mu.Lock()
	rt, exists := s.roomTypes[id]
	s.mu.Unlock()

	if !exists {
		return notFound(c, "Room type")
	}
	return c.JSON(rt)
}

func (s *Server) createRoomType(c *fiber.Ctx) error {
	req := api.RoomTypeRequest{}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Room type name is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rt := api.RoomType{
		ID:          s.allocID(),
		Name:        req.Name,
		BasePrice:   req.BasePrice,
		MaxGuests:   req.MaxGuests,
		Amenities:   req.Amenities,
		Description: req.Description,
	}
	s.roomTypes[rt.ID] = rt
	return c.Status(fiber.StatusCreated).JSON(rt)
}

func (s *Server) updateRoomType(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room type")
	}

	req := api.RoomTypeRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Malformed room type payload",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rt, exists := s.roomTypes[id]
	if !exists {
		return notFound(c, "Room type")
	}

	rt.Name = req.Name
	rt.BasePrice = req.BasePrice
	rt.MaxGuests = req.MaxGuests
	rt.Amenities = req.Amenities
	rt.Description = req.Description
	s.roomTypes[id] = rt
	return c.JSON(rt)
}

func (s *Server) deleteRoomType(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room type")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roomTypes[id]; !exists {
		return notFound(c, "Room type")
	}
	delete(s.roomTypes, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// rooms

func (s *Server) listRooms(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (s *Server) getRoom(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room")
	}

	s.mu.Lock()
	room, exists := s.rooms[id]
	s.mu.Unlock()

	if !exists {
		return notFound(c, "Room")
	}
	return c.JSON(room)
}

func (s *Server) createRoom(c *fiber.Ctx) error {
	req := api.RoomRequest{}
	if err := c.BodyParser(&req); err != nil || req.RoomNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Room number is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rt, exists := s.roomTypes[req.RoomTypeID]
	if !exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Room type is required",
		})
	}

	room := api.Room{
		ID:         s.allocID(),
		RoomNumber: req.RoomNumber,
		RoomType:   &rt,
		Floor:      req.Floor,
		Status:     req.Status,
	}
	if room.Status == "" {
		room.Status = api.RoomAvailable
	}
	s.rooms[room.ID] = room
	return c.Status(fiber.StatusCreated).JSON(room)
}

func (s *Server) updateRoom(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room")
	}

	req := api.RoomRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Malformed room payload",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, exists := s.rooms[id]
	if !exists {
		return notFound(c, "Room")
	}

	if rt, ok := s.roomTypes[req.RoomTypeID]; ok {
		room.RoomType = &rt
	}
	room.RoomNumber = req.RoomNumber
	room.Floor = req.Floor
	if req.Status != "" {
		room.Status = req.Status
	}
	s.rooms[id] = room
	return c.JSON(room)
}

func (s *Server) deleteRoom(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Room")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[id]; !exists {
		return notFound(c, "Room")
	}
	delete(s.rooms, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// staff

func (s *Server) listStaff(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Staff, 0, len(s.staff))
	for _, st := range s.staff {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (s *Server) createStaff(c *fiber.Ctx) error {
	req := api.StaffCreateRequest{}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Staff email is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := api.Staff{
		ID:         s.allocID(),
		Email:      req.Email,
		Name:       req.Name,
		Department: req.Department,
		Active:     true,
	}
	s.staff[st.ID] = st
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (s *Server) updateStaff(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Staff member")
	}

	req := api.StaffUpdateRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Malformed staff payload",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, exists := s.staff[id]
	if !exists {
		return notFound(c, "Staff member")
	}

	if req.Name != "" {
		st.Name = req.Name
	}
	if req.Department != "" {
		st.Department = req.Department
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	s.staff[id] = st
	return c.JSON(st)
}

func (s *Server) deleteStaff(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Staff member")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staff[id]; !exists {
		return notFound(c, "Staff member")
	}
	delete(s.staff, id)
	return c.SendStatus(fiber.StatusNoContent)
}

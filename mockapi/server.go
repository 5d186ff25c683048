// Package mockapi is an in-memory stand-in for the Roomify backend, the
// same role the mock blocks in the original console's service layer played:
// it lets the console and its tests run with no real backend. It implements
// the login exchange, the health probe, and the catalogue CRUD with the
// classic seed data. It is test/dev tooling, not a production server.
package mockapi

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roomify/go-session/api"
)

// DefaultSecret is the password every seeded account accepts.
const DefaultSecret = "roomify-dev"

type account struct {
	id           int64
	email        string
	username     string
	passwordHash []byte
	roles        []string
}

// Server simulates the Roomify backend over HTTP.
type Server struct {
	app        *fiber.App
	signingKey []byte
	tokenTTL   time.Duration

	// scalarRole mints the legacy single `role` claim instead of `roles`,
	// which is how older backend builds signed their tokens.
	scalarRole bool

	mu        sync.Mutex
	accounts  map[string]*account
	roomTypes map[int64]api.RoomType
	rooms     map[int64]api.Room
	staff     map[int64]api.Staff
	nextID    int64
}

type Option func(*Server)

// WithSigningKey overrides the HS256 key used to mint tokens.
func WithSigningKey(key []byte) Option {
	return func(s *Server) { s.signingKey = key }
}

// WithTokenTTL overrides token lifetime. Negative values mint
// already-expired tokens, which tests use to exercise expiry recovery.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithScalarRoleClaim makes login tokens carry a single `role` string
// claim rather than a `roles` list.
func WithScalarRoleClaim() Option {
	return func(s *Server) { s.scalarRole = true }
}

// New returns a seeded server: one manager, one staff and one guest
// account (password DefaultSecret), plus the classic room-type catalogue.
func New(opts ...Option) *Server {
	s := &Server{
		app:        fiber.New(fiber.Config{DisableStartupMessage: true}),
		signingKey: []byte("mockapi-signing-key"),
		tokenTTL:   time.Hour,
		accounts:   map[string]*account{},
		roomTypes:  map[int64]api.RoomType{},
		rooms:      map[int64]api.Room{},
		staff:      map[int64]api.Staff{},
		nextID:     1,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.seed()
	s.routes()

	return s
}

// App exposes the underlying fiber app, mostly for fiber's own Test helper.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on an ephemeral local port and returns the API base URL
// plus a shutdown func. Tests point their clients at the returned URL.
func (s *Server) Start() (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	go func() {
		_ = s.app.Listener(ln)
	}()

	base := "http://" + ln.Addr().String() + "/api"
	shutdown := func() {
		_ = s.app.Shutdown()
	}

	return base, shutdown, nil
}

// RegisterAccount adds or replaces an account. The password is stored as a
// bcrypt hash, like the real backend keeps it.
func (s *Server) RegisterAccount(email, username, secret string, roles ...string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[strings.ToLower(email)] = &account{
		id:           s.allocID(),
		email:        email,
		username:     usernameFromEmail(email, username),
		passwordHash: hash,
		roles:        roles,
	}
	return nil
}

// MintToken signs a bearer token for email with the given roles and ttl,
// bypassing the login exchange. Tests use it to fabricate cached sessions.
func (s *Server) MintToken(email string, ttl time.Duration, roles ...string) (string, error) {
	return s.signToken(email, ttl, roles)
}

func (s *Server) seed() {
	_ = s.RegisterAccount("admin@roomify.test", "admin", DefaultSecret, "ROLE_MANAGER")
	_ = s.RegisterAccount("staff@roomify.test", "staff", DefaultSecret, "ROLE_STAFF")
	_ = s.RegisterAccount("guest@roomify.test", "guest", DefaultSecret, "ROLE_GUEST")

	catalogue := []api.RoomType{
		{
			Name:        "Standard Room",
			BasePrice:   99.99,
			MaxGuests:   2,
			Amenities:   "WiFi,TV,Air Conditioning",
			Description: "A comfortable standard room with essential amenities for a pleasant stay.",
		},
		{
			Name:        "Deluxe Room",
			BasePrice:   179.99,
			MaxGuests:   2,
			Amenities:   "WiFi,TV,Air Conditioning,Mini Bar,Room Service",
			Description: "An upgraded room featuring premium furnishings and a curated mini bar.",
		},
		{
			Name:        "Suite",
			BasePrice:   349.99,
			MaxGuests:   4,
			Amenities:   "WiFi,TV,Air Conditioning,Mini Bar,Room Service,Jacuzzi,Balcony",
			Description: "A spacious suite with separate living area, jacuzzi, and private balcony.",
		},
		{
			Name:        "Family Room",
			BasePrice:   229.99,
			MaxGuests:   6,
			Amenities:   "WiFi,TV,Air Conditioning,Extra Beds,Kids Area",
			Description: "A large room designed for families with extra beds and a dedicated kids area.",
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range catalogue {
		rt.ID = s.allocID()
		s.roomTypes[rt.ID] = rt
	}
}

func (s *Server) signToken(email string, ttl time.Duration, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"jti": uuid.New().String(),
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
	}

	if s.scalarRole {
		role := ""
		if len(roles) > 0 {
			role = roles[0]
		}
		claims["role"] = role
	} else {
		claims["roles"] = roles
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

func (s *Server) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func usernameFromEmail(email, username string) string {
	if username != "" {
		return username
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

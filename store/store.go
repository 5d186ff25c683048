// Package store provides durable TokenStore implementations for the
// console: a bun-backed sqlite store for real runs and an in-memory store
// for tests and examples. The sqlite store keeps two rows, one for the raw
// token and one for the serialized profile, mirroring the two entries the
// session core has always cached.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	session "github.com/roomify/go-session"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

type entry struct {
	bun.BaseModel `bun:"table:auth_state,alias:ast"`

	Key   string `bun:"key,pk" json:"key"`
	Value string `bun:"value,notnull" json:"value"`
}

var _ session.TokenStore = (*Bun)(nil)

// Bun is a sqlite-backed token store. The database file plays the role the
// origin-scoped browser storage played for the web console: durable across
// restarts, private to the local profile.
type Bun struct {
	db *bun.DB
}

// Open creates (if needed) and opens the state database at path and
// returns a ready store.
func Open(path string) (*Bun, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	s := NewBun(db)
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// NewBun wraps an existing bun handle. Call Init before first use.
func NewBun(db *bun.DB) *Bun {
	return &Bun{db: db}
}

// Init creates the auth_state table when it does not exist yet.
func (s *Bun) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*entry)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Close releases the underlying database handle.
func (s *Bun) Close() error {
	return s.db.Close()
}

// Save upserts the token and the serialized profile in one transaction so
// the cache never holds half an update.
func (s *Bun) Save(ctx context.Context, token string, profile *session.Profile) error {
	serialized, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	entries := []entry{
		{Key: keyToken, Value: token},
		{Key: keyUser, Value: string(serialized)},
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&entries).
			On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Exec(ctx)
		return err
	})
}

// Load reads back the cached token and profile. Missing rows come back as
// zero values; a profile row that no longer parses is treated as absent
// rather than an error.
func (s *Bun) Load(ctx context.Context) (string, *session.Profile, error) {
	var entries []entry
	if err := s.db.NewSelect().
		Model(&entries).
		Scan(ctx); err != nil {
		return "", nil, err
	}

	var token string
	var profile *session.Profile

	for _, e := range entries {
		switch e.Key {
		case keyToken:
			token = e.Value
		case keyUser:
			if e.Value == "" || e.Value == "null" {
				continue
			}
			decoded := &session.Profile{}
			if err := json.Unmarshal([]byte(e.Value), decoded); err == nil {
				profile = decoded
			}
		}
	}

	return token, profile, nil
}

// Clear removes every cached entry. Clearing an empty store is a no-op.
func (s *Bun) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*entry)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}

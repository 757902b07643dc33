package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoDraft is returned when no usable draft exists for a session.
var ErrNoDraft = errors.New("no draft found")

// DraftStore persists in-progress wizard state keyed by session.
type DraftStore interface {
	Save(ctx context.Context, sessionID string, state *State) error
	Load(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
}

const draftKeyPrefix = "questionnaire:draft:"

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := state.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}

	return s.client.Set(ctx, draftKeyPrefix+sessionID, data, s.ttl).Err()
}

// Load returns the stored draft. Drafts from an older schema version are
// deleted and reported as absent, so the caller starts fresh.
func (s *RedisDraftStore) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, err
	}

	state, err := Unmarshal(data)
	if err != nil {
		_ = s.client.Del(ctx, draftKeyPrefix+sessionID).Err()
		return nil, ErrNoDraft
	}

	return state, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, draftKeyPrefix+sessionID).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"myaccount/internal/account"
	apperrors "myaccount/internal/errors"
)

const sessionKeyPrefix = "account:session:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ValkeySessionStore keeps page sessions as JSON snapshots in Valkey.
// A session is driven by one browser tab, so get-modify-set is enough.
// Keys expire natively; the ids created here are tracked so Sweep can
// report the ones that expired without an unmount.
type ValkeySessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	local map[string]struct{}
}

func NewValkeySessionStore(cfg Config) (*ValkeySessionStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeySessionStore{
		client: rdb,
		ttl:    cfg.TTL,
		local:  make(map[string]struct{}),
	}, nil
}

func (v *ValkeySessionStore) Create(ctx context.Context, state *account.State) (string, error) {
	id := uuid.New().String()
	if err := v.save(ctx, id, state); err != nil {
		return "", err
	}

	v.mu.Lock()
	v.local[id] = struct{}{}
	v.mu.Unlock()
	return id, nil
}

func (v *ValkeySessionStore) Update(ctx context.Context, id string, fn func(*account.State) error) error {
	raw, err := v.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("session lookup error: %w", err)
	}

	state, err := decodeState(raw)
	if err != nil {
		return err
	}

	fnErr := fn(state)
	if err := v.save(ctx, id, state); err != nil {
		return err
	}
	return fnErr
}

func (v *ValkeySessionStore) Delete(ctx context.Context, id string) error {
	n, err := v.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("session delete error: %w", err)
	}
	if n == 0 {
		return apperrors.ErrSessionNotFound
	}

	v.mu.Lock()
	delete(v.local, id)
	v.mu.Unlock()
	return nil
}

// Sweep forgets tracked sessions whose keys have expired and reports how many
func (v *ValkeySessionStore) Sweep(ctx context.Context) (int, error) {
	v.mu.Lock()
	ids := make([]string, 0, len(v.local))
	for id := range v.local {
		ids = append(ids, id)
	}
	v.mu.Unlock()

	if len(ids) == 0 {
		return 0, nil
	}

	pipe := v.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Exists(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("session sweep error: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	removed := 0
	for i, cmd := range cmds {
		if cmd.Val() > 0 {
			continue
		}
		// Delete may have forgotten it in the meantime
		if _, ok := v.local[ids[i]]; ok {
			delete(v.local, ids[i])
			removed++
		}
	}
	return removed, nil
}

func (v *ValkeySessionStore) Close() error {
	return v.client.Close()
}

func (v *ValkeySessionStore) save(ctx context.Context, id string, state *account.State) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := v.client.Set(ctx, sessionKey(id), raw, v.ttl).Err(); err != nil {
		return fmt.Errorf("session save error: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func encodeState(state *account.State) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return raw, nil
}

func decodeState(raw []byte) (*account.State, error) {
	var state account.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if state.Expanded == nil {
		state.Expanded = account.ExpandFlags{}
	}
	return &state, nil
}

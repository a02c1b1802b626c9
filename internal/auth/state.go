package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateTTL bounds how long a player may take at the provider's consent page.
const StateTTL = 10 * time.Minute

var (
	ErrStateMissing  = errors.New("state token is required")
	ErrStateUnknown  = errors.New("invalid or expired state token")
	ErrStateProvider = errors.New("state token issued for another provider")
)

// OAuthState is what the server remembers between redirecting a player to a
// provider and receiving the callback.
type OAuthState struct {
	Provider    string    `json:"provider"`
	UserAgent   string    `json:"user_agent"`
	RedirectURI string    `json:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at"`
}

// StateStore keeps pending OAuth states. Take must remove the state so each
// token is accepted at most once, and must not return states older than
// StateTTL.
type StateStore interface {
	Put(ctx context.Context, token string, s OAuthState) error
	Take(ctx context.Context, token string) (*OAuthState, error)
}

func newStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// IssueState records a new pending login for provider and returns its token.
func IssueState(ctx context.Context, store StateStore, provider, userAgent, redirectURI string) (string, error) {
	token, err := newStateToken()
	if err != nil {
		return "", err
	}

	err = store.Put(ctx, token, OAuthState{
		Provider:    provider,
		UserAgent:   userAgent,
		RedirectURI: redirectURI,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store state token: %w", err)
	}
	return token, nil
}

// RedeemState consumes token and checks it was issued for provider. A changed
// user agent is only logged.
func RedeemState(ctx context.Context, store StateStore, token, provider, userAgent string) (*OAuthState, error) {
	if token == "" {
		return nil, ErrStateMissing
	}

	s, err := store.Take(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.Provider != provider {
		return nil, ErrStateProvider
	}
	if s.UserAgent != userAgent {
		slog.Warn("OAuth state redeemed from a different user agent",
			"component", "oauth_state",
			"provider", provider)
	}
	return s, nil
}

// MemoryStateStore keeps states in process memory. Expired entries are swept
// whenever a new state is stored.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]OAuthState
	now    func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]OAuthState),
		now:    time.Now,
	}
}

func (m *MemoryStateStore) Put(ctx context.Context, token string, s OAuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for t, old := range m.states {
		if now.Sub(old.CreatedAt) > StateTTL {
			delete(m.states, t)
		}
	}

	s.CreatedAt = now
	m.states[token] = s
	return nil
}

func (m *MemoryStateStore) Take(ctx context.Context, token string) (*OAuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[token]
	if !ok {
		return nil, ErrStateUnknown
	}
	delete(m.states, token)

	if m.now().Sub(s.CreatedAt) > StateTTL {
		return nil, ErrStateUnknown
	}
	return &s, nil
}

func (m *MemoryStateStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// RedisStateStore shares pending states between server instances. Redis
// expires them after StateTTL.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func stateKey(token string) string {
	return "oauth:state:" + token
}

func (r *RedisStateStore) Put(ctx context.Context, token string, s OAuthState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stateKey(token), data, StateTTL).Err()
}

func (r *RedisStateStore) Take(ctx context.Context, token string) (*OAuthState, error) {
	data, err := r.client.GetDel(ctx, stateKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrStateUnknown
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state token: %w", err)
	}

	var s OAuthState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode state token: %w", err)
	}
	return &s, nil
}

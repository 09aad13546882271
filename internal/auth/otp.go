package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 5
)

// Challenge is a pending email-verification code. Only the hash of the
// code is stored.
type Challenge struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// ChallengeStore keeps pending OTP challenges, one per email.
// Get returns (nil, nil) when no challenge exists.
type ChallengeStore interface {
	Put(ctx context.Context, ch Challenge) error
	Get(ctx context.Context, email string) (*Challenge, error)
	Delete(ctx context.Context, email string) error
}

func hashOTP(email, code string) string {
	sum := sha256.Sum256([]byte(email + ":" + code))
	return hex.EncodeToString(sum[:])
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type RedisChallengeStore struct {
	client *goredis.Client
	prefix string
}

func NewRedisChallengeStore(client *goredis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{
		client: client,
		prefix: "otp:",
	}
}

func (r *RedisChallengeStore) key(email string) string {
	return r.prefix + email
}

func (r *RedisChallengeStore) Put(ctx context.Context, ch Challenge) error {
	ttl := time.Until(ch.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("auth: challenge expires_at must be in the future")
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("auth: failed to marshal challenge: %w", err)
	}

	return r.client.Set(ctx, r.key(ch.Email), data, ttl).Err()
}

func (r *RedisChallengeStore) Get(ctx context.Context, email string) (*Challenge, error) {
	val, err := r.client.Get(ctx, r.key(email)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ch Challenge
	if err := json.Unmarshal([]byte(val), &ch); err != nil {
		return nil, fmt.Errorf("auth: failed to unmarshal challenge: %w", err)
	}
	return &ch, nil
}

func (r *RedisChallengeStore) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.key(email)).Err()
}

// MemoryChallengeStore backs tests and Redis-less local runs.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
}

func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: map[string]Challenge{},
	}
}

func (m *MemoryChallengeStore) Put(ctx context.Context, ch Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challenges[ch.Email] = ch
	return nil
}

func (m *MemoryChallengeStore) Get(ctx context.Context, email string) (*Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.challenges[email]
	if !ok {
		return nil, nil
	}
	if time.Now().After(ch.ExpiresAt) {
		delete(m.challenges, email)
		return nil, nil
	}

	out := ch
	return &out, nil
}

func (m *MemoryChallengeStore) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.challenges, email)
	return nil
}

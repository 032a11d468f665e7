package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	registrationKeyPrefix = "registration:"
	otpKeyPrefix          = "otp:"

	RegistrationTTL = 15 * time.Minute
	OtpTTL          = 5 * time.Minute
)

var ErrTokenNotFound = errors.New("registration token not found or expired")

// RegistrationStore keeps pending registrations and OTP codes in Redis.
// Both are TTL-bound; the OTP is consumed read-once via GETDEL, so a
// concurrent double verification resolves to at-most-one-wins.
type RegistrationStore struct {
	rdb *redis.Client
}

func NewRegistrationStore(rdb *redis.Client) *RegistrationStore {
	return &RegistrationStore{rdb: rdb}
}

func (s *RegistrationStore) SavePending(ctx context.Context, reg pendingRegistration) (string, error) {
	token, err := newRegistrationToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(reg)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, registrationKeyPrefix+token, payload, RegistrationTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RegistrationStore) GetPending(ctx context.Context, token string) (pendingRegistration, error) {
	val, err := s.rdb.Get(ctx, registrationKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pendingRegistration{}, ErrTokenNotFound
		}
		return pendingRegistration{}, err
	}

	var reg pendingRegistration
	if err := json.Unmarshal([]byte(val), &reg); err != nil {
		return pendingRegistration{}, err
	}
	return reg, nil
}

func (s *RegistrationStore) DeletePending(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, registrationKeyPrefix+token).Err()
}

func (s *RegistrationStore) SaveOtp(ctx context.Context, email, code string) error {
	return s.rdb.Set(ctx, otpKeyPrefix+email, code, OtpTTL).Err()
}

// PeekOtp reads the OTP without consuming it, so a mistyped code does not
// burn the real one.
func (s *RegistrationStore) PeekOtp(ctx context.Context, email string) (string, error) {
	val, err := s.rdb.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return val, nil
}

// ConsumeOtp reads and deletes the OTP atomically; the second concurrent
// consumer sees not-found.
func (s *RegistrationStore) ConsumeOtp(ctx context.Context, email string) (string, error) {
	val, err := s.rdb.GetDel(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return val, nil
}

func newRegistrationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NewOtpCode returns a 6-digit numeric code from crypto/rand.
func NewOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

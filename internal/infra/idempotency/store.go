package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Store maps a client-supplied Idempotency-Key to the appointment it created.
//
// A request first reserves its key. The reservation is pending until the
// owner either stores the created id with Remember or gives the key back
// with Release.
type Store interface {
	// Reserve returns the id stored by an earlier request, ErrInProgress
	// while another request holds the key, or (0, nil) once the caller owns
	// the key.
	Reserve(ctx context.Context, key string) (uint, error)
	Remember(ctx context.Context, key string, appointmentID uint) error
	Release(ctx context.Context, key string) error
}

const (
	DefaultTTL   = 24 * time.Hour
	MaxKeyLength = 128

	// PendingTTL bounds how long a crashed request can hold a key.
	PendingTTL = time.Minute
)

var (
	ErrInvalidKey = errors.New("invalid idempotency key")
	ErrInProgress = errors.New("idempotency key is in use by another request")
)

func ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > MaxKeyLength {
		return ErrInvalidKey
	}
	return nil
}

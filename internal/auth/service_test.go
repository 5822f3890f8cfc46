package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"karak-pos/internal/config"
)

func hashPin(t *testing.T, pin string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newService(t *testing.T) *service {
	t.Helper()
	svc := NewService(&config.Config{
		SecretKey:    "test-secret",
		StaffPinHash: hashPin(t, "123"),
		AdminPinHash: hashPin(t, "987"),
	})
	return svc.(*service)
}

func TestUnlock(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	t.Run("Staff PIN", func(t *testing.T) {
		token, role, err := svc.Unlock(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, RoleStaff, role)

		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, RoleStaff, got)
	})

	t.Run("Admin PIN", func(t *testing.T) {
		token, role, err := svc.Unlock(ctx, "987")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, role)

		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, got)
	})

	t.Run("Wrong PIN", func(t *testing.T) {
		_, _, err := svc.Unlock(ctx, "000")
		assert.ErrorIs(t, err, ErrInvalidPIN)
	})

	t.Run("No Hashes Configured", func(t *testing.T) {
		bare := NewService(&config.Config{SecretKey: "k"})
		_, _, err := bare.Unlock(ctx, "123")
		assert.ErrorIs(t, err, ErrInvalidPIN)
	})
}

func TestVerify(t *testing.T) {
	svc := newService(t)

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := NewService(&config.Config{
			SecretKey:    "different-secret",
			StaffPinHash: hashPin(t, "123"),
		})
		token, _, err := other.Unlock(context.Background(), "123")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired Session", func(t *testing.T) {
		token, _, err := svc.Unlock(context.Background(), "123")
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(sessionTTL + time.Minute) }
		defer func() { svc.now = time.Now }()

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"karak-pos/internal/config"
	"karak-pos/internal/logger"
)

// Role is what a device unlocked with its PIN may do. The PIN gate is a
// speed-bump against accidental taps, not a security boundary: everyone
// at the stall shares the two PINs.
type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// sessionTTL outlives the longest shift so nobody re-enters a PIN at
// 2 AM with wet hands.
const sessionTTL = 14 * time.Hour

var (
	ErrInvalidPIN   = errors.New("invalid pin")
	ErrInvalidToken = errors.New("invalid session token")
)

type Service interface {
	// Unlock checks the PIN against the configured hashes and issues a
	// session token carrying the matched role.
	Unlock(ctx context.Context, pin string) (string, Role, error)
	// Verify parses a session token and returns its role.
	Verify(token string) (Role, error)
}

type service struct {
	secret    []byte
	staffHash string
	adminHash string
	now       func() time.Time
}

func NewService(cfg *config.Config) Service {
	return &service{
		secret:    []byte(cfg.SecretKey),
		staffHash: cfg.StaffPinHash,
		adminHash: cfg.AdminPinHash,
		now:       time.Now,
	}
}

func (s *service) Unlock(ctx context.Context, pin string) (string, Role, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Unlock"),
	)

	// 1. Match the PIN. Admin is tried first so the two hashes may
	// even be the same during setup.
	var role Role
	switch {
	case s.adminHash != "" && bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(pin)) == nil:
		role = RoleAdmin
	case s.staffHash != "" && bcrypt.CompareHashAndPassword([]byte(s.staffHash), []byte(pin)) == nil:
		role = RoleStaff
	default:
		log.Warn("pin rejected")
		return "", "", ErrInvalidPIN
	}

	// 2. Issue the session token.
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}

	log.Info("device unlocked", zap.String("role", string(role)))
	return signed, role, nil
}

func (s *service) Verify(tokenStr string) (Role, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	roleStr, _ := claims["role"].(string)
	switch Role(roleStr) {
	case RoleStaff:
		return RoleStaff, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidToken
}

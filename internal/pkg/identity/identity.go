package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"orderflow/internal/entities"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

const tokenQueryParam = "token"

// Claims - полезная нагрузка токена, выпущенного сервисом аутентификации.
type Claims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	now    func() time.Time
}

func New(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &Verifier{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Parse проверяет HS256-подпись и срок действия, возвращает инициатора запроса.
func (v *Verifier) Parse(tokenStr string) (entities.Actor, error) {
	if tokenStr == "" {
		return entities.Actor{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return entities.Actor{}, ErrInvalidToken
	}

	role := entities.Role(strings.ToLower(claims.UserType))
	if claims.UserID == "" || !role.IsValid() {
		return entities.Actor{}, fmt.Errorf("%w: user_id or user_type claim is missing", ErrInvalidToken)
	}

	return entities.Actor{ID: claims.UserID, Role: role}, nil
}

// Issue подписывает токен для actor. Используется в тестах и локальной отладке.
func (v *Verifier) Issue(actor entities.Actor, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		UserID:   actor.ID,
		UserType: actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TokenFromRequest берёт токен из заголовка Authorization, для websocket также из ?token=.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return r.URL.Query().Get(tokenQueryParam)
}

type actorKey struct{}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims issued by the account service
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type callerKey struct{}

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthenticator creates an authenticator for the shared secret
func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Verify parses a raw token and returns the caller it identifies
func (a *Authenticator) Verify(raw string) (duel.Caller, error) {
	var claims Claims
	token, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return duel.Caller{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return duel.Caller{}, errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return duel.Caller{}, errors.New("token has no subject")
	}

	return duel.Caller{UserID: subject, Role: claims.Role}, nil
}

// middleware rejects requests without a valid bearer token
func (a *Authenticator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "missing bearer token"})
			return
		}

		caller, err := a.Verify(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "UNAUTHORIZED", Message: "invalid bearer token"})
			return
		}

		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CallerFrom returns the authenticated caller stored on the request context
func CallerFrom(ctx context.Context) (duel.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(duel.Caller)
	return caller, ok
}

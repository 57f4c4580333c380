package v1handler

import (
	"context"
	"fmt"
	"net/http"
	"payments/internal/config"
	"payments/pkg/logger"
	"payments/pkg/serrors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SubjectKey is the context key under which the authenticated token subject is stored.
const SubjectKey CtxKey = "subject"

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// SubjectFromContext returns the authenticated subject, if any.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(SubjectKey).(string)

	return s
}

// SecHandlerOptions configure bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key verifying RS256 tokens.
	// An empty key disables authentication.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.Auth.PublicKey}
}

// SecHandler verifies bearer tokens on protected endpoints.
type SecHandler struct {
	handler *Handler
	parser  *jwt.Parser
	keyFunc jwt.Keyfunc
}

// NewSecHandler returns a SecHandler for opts; rejected requests are answered through h.
// A nil or empty options value yields a handler that lets every request through.
func NewSecHandler(h *Handler, opts *SecHandlerOptions) (*SecHandler, error) {
	s := &SecHandler{handler: h}
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return s, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}
	s.keyFunc = func(*jwt.Token) (any, error) { return key, nil }
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return s, nil
}

// Enabled reports whether tokens are verified.
func (s *SecHandler) Enabled() bool { return s.parser != nil }

// HandleBearerAuth verifies token and returns a context carrying its subject.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, s.keyFunc); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if claims.Subject == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
	ctx = logger.WithFields(ctx, zap.String(string(SubjectKey), claims.Subject))

	return ctx, nil
}

// Middleware rejects requests without a valid bearer token when authentication is enabled.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	if !s.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			s.handler.writeError(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(ctx, strings.TrimSpace(token))
		if err != nil {
			s.handler.writeError(ctx, w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

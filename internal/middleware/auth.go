// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

type contextKey string

const (
	ClaimsKey contextKey = "jwt_claims"
	ActorKey  contextKey = "actor"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// ActorLoader re-reads the caller's current role, shift and manager
// from the store.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID string) (policy.Actor, error)
}

type AccessTokenClaims struct {
	UserID    string
	Email     string
	Role      string
	Shift     string
	ManagerID string
	TokenID   string
	ExpiresAt time.Time
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveActor must run after Authenticator. Authorization decisions
// use the stored role and shift, not the ones baked into the token,
// so a promotion or demotion takes effect on the next request.
func ResolveActor(loader ActorLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				core.Unauthorized(w, "")
				return
			}

			actor, err := loader.LoadActor(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Unauthorized(w, "Access denied. Account no longer exists.")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			if actor.Role != claims.Role || actor.Shift != claims.Shift {
				slog.DebugContext(r.Context(), "token claims are stale",
					"user_id", actor.ID,
					"token_role", claims.Role,
					"role", actor.Role,
				)
			}

			core.TagActor(r.Context(), actor.ID, actor.Role, actor.Shift)

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				core.Unauthorized(w, "")
				return
			}

			if _, allowed := roleSet[actor.Role]; !allowed {
				core.Forbidden(w, "Access denied. Insufficient privileges.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff admits managers and developers.
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(policy.RoleManager, policy.RoleDeveloper)(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	default:
		core.InternalServerError(w, err)
	}
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor.ID
	}
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

func ActorFromContext(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(policy.Actor)
	return actor, ok
}

// WithActor is used by tests and internal callers that build requests
// without going through the token pipeline.
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

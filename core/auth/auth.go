package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/core/claims"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
)

// LoadAndSave adapts the scs middleware to the handler chain: it loads
// the session before the handler runs and commits it afterwards.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			hn := func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}

			session.LoadAndSave(http.HandlerFunc(hn)).ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}

// Authenticate rejects requests without a logged-in session and puts
// the session's claims on the context for downstream handlers.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			clm := claims.Claims{
				UserID: userID,
				Role:   session.GetString(ctx, userRoleKey),
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Admin is Authenticate plus an admin-role check.
func Admin(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			role := session.GetString(ctx, userRoleKey)
			if role != claims.RoleAdmin {
				err := errors.New("admin role required")
				return weberr.NewError(err, err.Error(), http.StatusForbidden)
			}

			clm := claims.Claims{UserID: userID, Role: role}
			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// login rotates the session token and binds it to the user. The token
// rotation guards against session fixation.
func login(ctx context.Context, session *scs.SessionManager, userID, role string) error {
	if err := session.RenewToken(ctx); err != nil {
		return err
	}

	session.Put(ctx, userIDKey, userID)
	session.Put(ctx, userRoleKey, role)
	return nil
}

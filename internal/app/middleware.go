package app

import (
	"errors"
	"net/http"

	"github.com/driverledger/driverledger/internal/rest"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(userContextMiddleware(deps.UserService))
}

// userContextMiddleware resolves the X-User-Id header (a user uid) into the request context.
// Requests without the header pass through anonymously and fail in the services with user.ErrNoUser.
func userContextMiddleware(userService user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid != "" {
				u, err := userService.GetUserByUid(ctx, uid)
				switch {
				case errors.Is(err, user.ErrUserNotFound):
					log.Debugf("user not found: %s", uid)
					rest.WriteError(w, http.StatusForbidden, "user not found", "")
					return
				case errors.Is(err, user.ErrUserDataInvalid):
					rest.WriteError(w, http.StatusBadRequest, "invalid user id", err.Error())
					return
				case err != nil:
					log.Errorf("failed to get user: %v", err)
					rest.WriteError(w, http.StatusInternalServerError, "failed to get user", "")
					return
				}
				log.Tracef("user found: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

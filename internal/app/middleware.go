package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pitstop/pitstop/internal/config"
	"github.com/pitstop/pitstop/pkg/actor"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Actor-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debug("Propagating actor ID header")

			actorIdHeader := req.Header.Get("X-Actor-Id")
			ctx := req.Context()

			if actorIdHeader != "" {
				a, err := deps.ActorService.GetActorByUid(ctx, actorIdHeader)
				if err != nil {
					if errors.Is(err, actor.ErrActorNotFound) {
						log.Debugf("actor not found: %s", actorIdHeader)
						http.Error(w, "actor not found", http.StatusForbidden)
						return
					} else {
						log.Errorf("failed to get actor: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					log.Debugf("actor found: %s", a.Uid)
					ctx = actor.WithActor(ctx, a)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"worklog/internal/http/respond"

	"github.com/rs/zerolog/log"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and database reachability.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{
				Data:    map[string]string{"database": "down"},
				Message: "unhealthy",
			})
			return
		}
		respond.OK(w, map[string]string{"database": "up"})
	}
}

package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"BoatSharing/internal/lib/api/response"
)

// Core exposes the liveness facts the health endpoint reports.
type Core interface {
	StoreAvailable() bool
}

type healthResponse struct {
	response.Response
	StoreAvailable bool `json:"store_available"`
}

// Health reports process liveness and record-store availability.
func Health(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, healthResponse{
			Response:       response.Ok("alive"),
			StoreAvailable: handler.StoreAvailable(),
		})
	}
}

package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BoatSharing/internal/lib/api/response"
	"BoatSharing/internal/lib/sl"
)

// Core exposes submission counters for the stats endpoint.
type Core interface {
	AcceptedSubmissions() int64
}

type statsResponse struct {
	response.Response
	Accepted int64 `json:"accepted"`
}

// Submissions reports how many submissions were accepted since startup.
func Submissions(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.stats"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("submission service not available")
			render.JSON(w, r, response.Error("submission service not available"))
			return
		}

		render.JSON(w, r, statsResponse{
			Response: response.Ok(""),
			Accepted: handler.AcceptedSubmissions(),
		})
	}
}

package httpadapter

import (
	"net/http"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		// The upstream rejected our credentials; the caller cannot fix that.
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrRankingStage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

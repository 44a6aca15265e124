package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

const maxRequestBytes = 1 << 20

// handlePredict decodes an observation body, forces the route's hazard and
// responds with the assessment.
func (s *Server) handlePredict(h domain.Hazard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
			return
		}

		rec, err := domain.DecodeObservationAs(body, h)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := s.assessor.Assess(r.Context(), rec)
		if err != nil {
			if isInputError(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error("predict failed", "hazard", h, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func isInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCoordinate) ||
		errors.Is(err, domain.ErrInvalidCategoricalValue) ||
		errors.Is(err, domain.ErrUnknownHazard)
}

package httpapi

import (
	"net/http"

	"github.com/aliskhannn/lingua/internal/service"
)

type outcomeResponse struct {
	Outcome service.HeartOutcome `json:"outcome"`
}

type activeCourseRequest struct {
	CourseID int64 `json:"courseId"`
}

func (h *Handler) putActiveCourse(w http.ResponseWriter, r *http.Request) {
	var req activeCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.CourseID <= 0 {
		h.writeError(w, r, errBadRequest)
		return
	}

	if err := h.economy.UpsertUserProgress(r.Context(), req.CourseID); err != nil {
		h.writeError(w, r, err)
		return
	}

	progress, err := h.learn.GetUserProgress(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) postReduceHearts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	outcome, err := h.economy.ReduceHearts(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Outcome: outcome})
}

func (h *Handler) postCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	outcome, err := h.economy.UpsertChallengeProgress(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Outcome: outcome})
}

func (h *Handler) postRefillHearts(w http.ResponseWriter, r *http.Request) {
	if err := h.economy.RefillHearts(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	progress, err := h.learn.GetUserProgress(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

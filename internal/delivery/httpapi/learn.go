package httpapi

import (
	"net/http"

	"github.com/aliskhannn/lingua/internal/service"
)

func (h *Handler) getCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.learn.GetCourses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	course, err := h.learn.GetCourseByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if course == nil {
		h.writeError(w, r, service.ErrCourseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) getUserProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.learn.GetUserProgress(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) getSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.learn.GetUserSubscription(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) getIsAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": h.learn.IsAdmin(r.Context())})
}

func (h *Handler) getUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.learn.GetUnits(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *Handler) getCourseProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.learn.GetCourseProgress(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) getLessonPercentage(w http.ResponseWriter, r *http.Request) {
	pct, err := h.learn.GetLessonPercentage(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"percentage": pct})
}

func (h *Handler) getActiveLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.learn.GetLesson(r.Context(), nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *Handler) getLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lesson, err := h.learn.GetLesson(r.Context(), &id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if lesson == nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := h.learn.GetTopTenUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (h *Handler) getQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.learn.GetQuests(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quests)
}

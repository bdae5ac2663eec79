package httpapi

import (
	"context"
	"net/http"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// resource is the CRUD surface of one admin collection.
type resource[T any] struct {
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, v *T) error
	update func(ctx context.Context, v *T) error
	delete func(ctx context.Context, id int64) error
	setID  func(v *T, id int64)
}

func registerResource[T any](mux *http.ServeMux, h *Handler, name string, res resource[T]) {
	base := "/api/admin/" + name

	mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		items, err := res.list(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	})

	mux.HandleFunc("GET "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		item, err := res.get(r.Context(), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	})

	mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := decodeJSON(r, &item); err != nil {
			h.writeError(w, r, err)
			return
		}
		res.setID(&item, 0)
		if err := res.create(r.Context(), &item); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	})

	mux.HandleFunc("PUT "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		var item T
		if err := decodeJSON(r, &item); err != nil {
			h.writeError(w, r, err)
			return
		}
		res.setID(&item, id)
		if err := res.update(r.Context(), &item); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	})

	mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := res.delete(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *Handler) registerAdmin(mux *http.ServeMux) {
	registerResource(mux, h, "courses", resource[entities.Course]{
		list:   h.admin.ListCourses,
		get:    h.admin.GetCourse,
		create: h.admin.CreateCourse,
		update: h.admin.UpdateCourse,
		delete: h.admin.DeleteCourse,
		setID:  func(c *entities.Course, id int64) { c.ID = id },
	})
	registerResource(mux, h, "units", resource[entities.Unit]{
		list:   h.admin.ListUnits,
		get:    h.admin.GetUnit,
		create: h.admin.CreateUnit,
		update: h.admin.UpdateUnit,
		delete: h.admin.DeleteUnit,
		setID:  func(u *entities.Unit, id int64) { u.ID = id },
	})
	registerResource(mux, h, "lessons", resource[entities.Lesson]{
		list:   h.admin.ListLessons,
		get:    h.admin.GetLesson,
		create: h.admin.CreateLesson,
		update: h.admin.UpdateLesson,
		delete: h.admin.DeleteLesson,
		setID:  func(l *entities.Lesson, id int64) { l.ID = id },
	})
	registerResource(mux, h, "challenges", resource[entities.Challenge]{
		list:   h.admin.ListChallenges,
		get:    h.admin.GetChallenge,
		create: h.admin.CreateChallenge,
		update: h.admin.UpdateChallenge,
		delete: h.admin.DeleteChallenge,
		setID:  func(c *entities.Challenge, id int64) { c.ID = id },
	})
	registerResource(mux, h, "challenge-options", resource[entities.ChallengeOption]{
		list:   h.admin.ListChallengeOptions,
		get:    h.admin.GetChallengeOption,
		create: h.admin.CreateChallengeOption,
		update: h.admin.UpdateChallengeOption,
		delete: h.admin.DeleteChallengeOption,
		setID:  func(o *entities.ChallengeOption, id int64) { o.ID = id },
	})

	mux.HandleFunc("PUT /api/admin/subscriptions/{userId}", h.putSubscription)
}

func (h *Handler) putSubscription(w http.ResponseWriter, r *http.Request) {
	var sub entities.UserSubscription
	if err := decodeJSON(r, &sub); err != nil {
		h.writeError(w, r, err)
		return
	}
	sub.UserID = r.PathValue("userId")

	if err := h.admin.UpsertSubscription(r.Context(), &sub); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

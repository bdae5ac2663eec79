// Package httpapi serves the JSON API used by the web client.
package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Handler holds the services behind the JSON API.
type Handler struct {
	learn   LearnService
	economy EconomyService
	admin   AdminService
	logger  *zap.Logger
	secret  []byte
}

// NewHandler creates a new API handler. secret verifies identity tokens.
func NewHandler(learn LearnService, economy EconomyService, admin AdminService, secret []byte, logger *zap.Logger) *Handler {
	return &Handler{
		learn:   learn,
		economy: economy,
		admin:   admin,
		logger:  logger,
		secret:  secret,
	}
}

// Routes returns the API with its middleware chain applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/courses", h.getCourses)
	mux.HandleFunc("GET /api/courses/{id}", h.getCourse)

	mux.HandleFunc("GET /api/me/progress", h.getUserProgress)
	mux.HandleFunc("PUT /api/me/active-course", h.putActiveCourse)
	mux.HandleFunc("GET /api/me/subscription", h.getSubscription)
	mux.HandleFunc("GET /api/me/admin", h.getIsAdmin)

	mux.HandleFunc("GET /api/learn/units", h.getUnits)
	mux.HandleFunc("GET /api/learn/course-progress", h.getCourseProgress)
	mux.HandleFunc("GET /api/learn/lesson-percentage", h.getLessonPercentage)

	mux.HandleFunc("GET /api/lessons/active", h.getActiveLesson)
	mux.HandleFunc("GET /api/lessons/{id}", h.getLesson)

	mux.HandleFunc("POST /api/challenges/{id}/reduce-hearts", h.postReduceHearts)
	mux.HandleFunc("POST /api/challenges/{id}/complete", h.postCompleteChallenge)
	mux.HandleFunc("POST /api/shop/refill-hearts", h.postRefillHearts)

	mux.HandleFunc("GET /api/leaderboard", h.getLeaderboard)
	mux.HandleFunc("GET /api/quests", h.getQuests)

	h.registerAdmin(mux)

	return Chain(mux,
		RequestID(),
		Recover(h.logger),
		AccessLog(h.logger),
		Authenticate(h.secret),
		RequestCache(),
	)
}

package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua/internal/delivery/httpapi"
	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/infra/sqlite/repository"
	"github.com/aliskhannn/lingua/internal/service"
)

var secret = []byte("test-secret")

type fixture struct {
	handler    http.Handler
	store      service.Store
	course     entities.Course
	lesson     entities.Lesson
	challenges []entities.Challenge
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	store := repository.NewStore(db)
	logger := zap.NewNop()
	board := service.NewLeaderboard(store.UserProgress, logger)
	admins := []string{"admin"}

	h := httpapi.NewHandler(
		service.NewLearnService(store, board, admins),
		service.NewEconomyService(store, board, logger),
		service.NewAdminService(store, board, admins),
		secret,
		logger,
	)

	f := &fixture{handler: h.Routes(), store: store}

	f.course = entities.Course{Title: "Spanish", ImageSrc: "/es.svg"}
	require.NoError(t, store.Courses.Create(ctx, &f.course))
	unit := entities.Unit{CourseID: f.course.ID, Title: "Unit 1", Description: "Basics", Order: 1}
	require.NoError(t, store.Units.Create(ctx, &unit))
	f.lesson = entities.Lesson{UnitID: unit.ID, Title: "Nouns", Order: 1}
	require.NoError(t, store.Lessons.Create(ctx, &f.lesson))
	for i := 1; i <= 2; i++ {
		c := entities.Challenge{LessonID: f.lesson.ID, Type: entities.ChallengeSelect, Question: "q", Order: i}
		require.NoError(t, store.Challenges.Create(ctx, &c))
		f.challenges = append(f.challenges, c)
	}
	return f
}

func token(t *testing.T, sub string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":     sub,
		"name":    "Ana",
		"picture": "/ana.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func (f *fixture) do(t *testing.T, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, user))
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthzAndRequestID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-7")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-7", rec.Header().Get("X-Request-ID"))
}

func TestAuthentication(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me/progress", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	wrong, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_a"}).SignedString([]byte("other"))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/me/progress", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/me/progress", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = f.do(t, http.MethodPost, "/api/shop/refill-hearts", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLearningFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/courses", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.Course](t, rec), 1)

	rec = f.do(t, http.MethodPut, "/api/me/active-course", "user_a", `{"courseId": 999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/me/active-course", "user_a", `{"courseId": `+itoa(f.course.ID)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode[entities.UserProgress](t, rec)
	assert.Equal(t, "Ana", progress.UserName)
	assert.Equal(t, entities.MaxHearts, progress.Hearts)

	rec = f.do(t, http.MethodGet, "/api/lessons/active", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lesson := decode[map[string]any](t, rec)
	assert.Equal(t, false, lesson["completed"])

	rec = f.do(t, http.MethodPost, "/api/challenges/"+itoa(f.challenges[0].ID)+"/complete", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode[map[string]string](t, rec)["outcome"])

	rec = f.do(t, http.MethodGet, "/api/learn/lesson-percentage", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, decode[map[string]int](t, rec)["percentage"])

	rec = f.do(t, http.MethodPost, "/api/challenges/"+itoa(f.challenges[0].ID)+"/reduce-hearts", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "practice", decode[map[string]string](t, rec)["outcome"])

	rec = f.do(t, http.MethodPost, "/api/challenges/"+itoa(f.challenges[1].ID)+"/reduce-hearts", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reduced", decode[map[string]string](t, rec)["outcome"])

	rec = f.do(t, http.MethodPost, "/api/shop/refill-hearts", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress = decode[entities.UserProgress](t, rec)
	assert.Equal(t, entities.MaxHearts, progress.Hearts)
	assert.Equal(t, 0, progress.Points)

	rec = f.do(t, http.MethodPost, "/api/shop/refill-hearts", "user_a", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/leaderboard", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.LeaderboardEntry](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/api/quests", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.QuestProgress](t, rec), len(entities.Quests))
}

func TestBadPathID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/lessons/abc", "user_a", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/courses/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/courses", "user_a", `{"title":"French","imageSrc":"/fr.svg"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/courses", "admin", `{"title":"French","imageSrc":"/fr.svg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[entities.Course](t, rec)
	require.NotZero(t, created.ID)

	rec = f.do(t, http.MethodPut, "/api/admin/courses/"+itoa(created.ID), "admin", `{"title":"Français","imageSrc":"/fr.svg"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/admin/courses", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.Course](t, rec), 2)

	rec = f.do(t, http.MethodPost, "/api/admin/challenges", "admin", `{"lessonId":`+itoa(f.lesson.ID)+`,"type":"TYPE","question":"q"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/courses/"+itoa(created.ID), "admin", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/courses/"+itoa(created.ID), "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/admin/subscriptions/user_a", "admin",
		`{"stripeCustomerId":"cus_1","stripeSubscriptionId":"sub_1","stripePriceId":"price_1","stripeCurrentPeriodEnd":"2999-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/me/subscription", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["isActive"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

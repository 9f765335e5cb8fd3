package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careercompass/internal/advisor"
	"github.com/muhammadolammi/careercompass/internal/auth"
	"github.com/muhammadolammi/careercompass/internal/database"
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/localcache"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]database.User
}

func (m *memUsers) CreateUser(_ context.Context, arg database.CreateUserParams) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := database.User{ID: uuid.New(), Email: arg.Email, PasswordHash: arg.PasswordHash, CreatedAt: time.Now()}
	m.users[arg.Email] = u
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithCache(t, localcache.NewMemory())
}

func newTestRouterWithCache(t *testing.T, cache domain.LocalCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := NewRegistry(func(device string) (*synchronizer.Synchronizer, error) {
		return synchronizer.New(synchronizer.Options{Cache: cache, Namespace: device})
	}, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, registry.Close(ctx))
	})

	adv, err := advisor.New(nil, nil, nil)
	require.NoError(t, err)
	authService := auth.NewService(&memUsers{users: map[string]database.User{}}, "test-secret", time.Hour, nil)

	return NewRouter(RouterConfig{Handler: NewHandler(registry, adv, authService, nil)})
}

type request struct {
	method string
	path   string
	device string
	token  string
	body   any
}

func do(t *testing.T, router http.Handler, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if r.device != "" {
		req.Header.Set(DeviceHeader, r.device)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func validAnswers() map[string]any {
	return map[string]any{
		"name":                 "Asha",
		"age":                  21,
		"education":            "Graduate",
		"location":             "Pune, Maharashtra",
		"fieldOfStudy":         "Computer Science/IT",
		"programmingLanguages": []string{"JavaScript"},
		"careerInterests":      []string{"Software Development", "Web Development", "DevOps"},
		"workEnvironment":      "Remote Work",
		"workStyle":            "Mixed approach",
		"careerGoals":          "Ship production software",
		"projects":             "A budgeting app in Go",
		"strengths":            []string{"Problem Solving"},
		"languages":            []string{"English", "Marathi"},
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, request{method: http.MethodGet, path: "/healthcheck"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCatalog(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, request{method: http.MethodGet, path: "/api/catalog"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Sections []json.RawMessage `json:"sections"`
	}](t, w)
	assert.Len(t, got.Sections, 4)
}

func TestState_MintsDeviceAndAnonymousIdentity(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, request{method: http.MethodGet, path: "/api/state"})
	require.Equal(t, http.StatusOK, w.Code)

	device := w.Header().Get(DeviceHeader)
	_, err := uuid.Parse(device)
	require.NoError(t, err)

	st := decode[stateView](t, w)
	require.NotNil(t, st.Identity)
	assert.True(t, st.Identity.Anonymous)
	assert.Equal(t, synchronizer.StepHome, st.Step)
	assert.Empty(t, st.ChatHistory)

	again := decode[stateView](t, do(t, router, request{method: http.MethodGet, path: "/api/state", device: device}))
	assert.Equal(t, st.Identity.ID, again.Identity.ID)
}

func TestSession_RejectsBadHeaders(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, request{method: http.MethodGet, path: "/api/state", device: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{method: http.MethodGet, path: "/api/state", token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode[ErrorEnvelope](t, w)
	assert.Equal(t, "invalid_token", env.Error.Code)
}

func TestAssessmentFlow(t *testing.T) {
	router := newTestRouter(t)
	device := uuid.NewString()

	incomplete := validAnswers()
	delete(incomplete, "name")
	w := do(t, router, request{method: http.MethodPost, path: "/api/assessment", device: device, body: incomplete})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode[ErrorEnvelope](t, w)
	assert.Contains(t, env.Error.Fields, "name")

	w = do(t, router, request{method: http.MethodPost, path: "/api/recommendations", device: device})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, request{method: http.MethodPost, path: "/api/assessment", device: device, body: validAnswers()})
	require.Equal(t, http.StatusCreated, w.Code)
	st := decode[stateView](t, w)
	require.NotNil(t, st.Assessment)
	assert.Equal(t, "Asha", st.Assessment.Name)
	assert.NotEmpty(t, st.Assessment.ID)
	assert.False(t, st.Assessment.CompletedAt.IsZero())
	assert.Equal(t, synchronizer.StepRecommendations, st.Step)

	w = do(t, router, request{method: http.MethodPost, path: "/api/recommendations", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	st = decode[stateView](t, w)
	assert.Len(t, st.Recommendations, 5)
	assert.Equal(t, synchronizer.StepSkills, st.Step)
	assert.False(t, st.Loading)

	w = do(t, router, request{method: http.MethodPost, path: "/api/skills", device: device, body: map[string]int{"careerIndex": 9}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{method: http.MethodPost, path: "/api/skills", device: device, body: map[string]int{"careerIndex": 0}})
	require.Equal(t, http.StatusOK, w.Code)
	st = decode[stateView](t, w)
	require.NotNil(t, st.SkillAnalysis)
	assert.Equal(t, len(st.Recommendations[0].Skills), len(st.SkillAnalysis.Existing)+len(st.SkillAnalysis.Missing))

	w = do(t, router, request{method: http.MethodGet, path: "/api/dashboard", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[dashboardView](t, w)
	assert.True(t, dash.Progress.Complete)
	assert.Equal(t, 5, dash.Stats.Total)
	assert.True(t, dash.HasSkillGap)
}

func TestChat(t *testing.T) {
	router := newTestRouter(t)
	device := uuid.NewString()

	w := do(t, router, request{method: http.MethodPost, path: "/api/chat", device: device, body: map[string]string{"message": "  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{method: http.MethodPost, path: "/api/chat", device: device, body: map[string]string{"message": "Any resume tips?"}})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Reply struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"reply"`
		State stateView `json:"state"`
	}](t, w)
	assert.Equal(t, "assistant", got.Reply.Sender)
	assert.Contains(t, got.Reply.Text, "resume tips")
	require.Len(t, got.State.ChatHistory, 3)
	assert.Equal(t, "Any resume tips?", got.State.ChatHistory[1].Text)

	w = do(t, router, request{method: http.MethodPost, path: "/api/chat", device: device, body: map[string]string{"message": "thanks"}})
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[struct {
		State stateView `json:"state"`
	}](t, w).State
	assert.Len(t, st.ChatHistory, 5)
}

func TestStepAndReset(t *testing.T) {
	router := newTestRouter(t)
	device := uuid.NewString()

	w := do(t, router, request{method: http.MethodPut, path: "/api/step", device: device, body: map[string]string{"step": "nowhere"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, request{method: http.MethodPut, path: "/api/step", device: device, body: map[string]string{"step": "assessment"}})
	require.Equal(t, http.StatusOK, w.Code)
	before := decode[stateView](t, w)
	assert.Equal(t, synchronizer.StepAssessment, before.Step)

	do(t, router, request{method: http.MethodPost, path: "/api/assessment", device: device, body: validAnswers()})

	w = do(t, router, request{method: http.MethodPost, path: "/api/reset", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	after := decode[stateView](t, w)
	assert.Nil(t, after.Assessment)
	assert.Equal(t, synchronizer.StepHome, after.Step)
	assert.True(t, after.Identity.Anonymous)
	assert.NotEqual(t, before.Identity.ID, after.Identity.ID)
}

func TestDraft(t *testing.T) {
	router := newTestRouter(t)
	device := uuid.NewString()

	w := do(t, router, request{method: http.MethodGet, path: "/api/assessment/draft", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"draft":null}`, w.Body.String())

	w = do(t, router, request{method: http.MethodPut, path: "/api/assessment/draft", device: device, body: map[string]any{"name": "As"}})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = do(t, router, request{method: http.MethodGet, path: "/api/assessment/draft", device: device})
	got := decode[struct {
		Draft struct {
			Name string `json:"name"`
		} `json:"draft"`
	}](t, w)
	assert.Equal(t, "As", got.Draft.Name)
}

type undeletableCache struct{ *localcache.Memory }

func (undeletableCache) Delete(context.Context, string) error { return errors.New("read-only volume") }

func TestReset_SurfacesPurgeFailure(t *testing.T) {
	router := newTestRouterWithCache(t, undeletableCache{localcache.NewMemory()})
	device := uuid.NewString()

	w := do(t, router, request{method: http.MethodPost, path: "/api/reset", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[stateView](t, w)
	require.NotNil(t, st.Error)
	assert.Equal(t, "saved data could not be cleared", st.Error.Message)
	assert.False(t, st.Loading)
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)
	device := uuid.NewString()
	creds := map[string]string{"email": "asha@example.com", "password": "s3cret!"}

	w := do(t, router, request{method: http.MethodPost, path: "/api/auth/signup", device: device, body: creds})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	signed := decode[struct {
		Token string    `json:"token"`
		State stateView `json:"state"`
	}](t, w)
	require.NotEmpty(t, signed.Token)
	assert.False(t, signed.State.Identity.Anonymous)
	assert.Equal(t, "asha@example.com", signed.State.Identity.Email)

	w = do(t, router, request{method: http.MethodPost, path: "/api/auth/signin", device: device, body: map[string]string{"email": "asha@example.com", "password": "nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, request{method: http.MethodGet, path: "/api/state", device: device})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, router, request{method: http.MethodGet, path: "/api/state", device: device, token: signed.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asha@example.com", decode[stateView](t, w).Identity.Email)

	other := uuid.NewString()
	w = do(t, router, request{method: http.MethodGet, path: "/api/state", device: other, token: signed.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, signed.State.Identity.ID, decode[stateView](t, w).Identity.ID)

	w = do(t, router, request{method: http.MethodPost, path: "/api/auth/signout", device: device})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[stateView](t, w)
	assert.True(t, out.Identity.Anonymous)
}

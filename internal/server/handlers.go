package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/careercompass/internal/advisor"
	"github.com/muhammadolammi/careercompass/internal/auth"
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

const (
	DeviceHeader = "X-Device-ID"
	sessionKey   = "session"
	tokenKey     = "token_verified"
)

type Handler struct {
	sessions *Registry
	advisor  *advisor.Advisor
	auth     *auth.Service
	log      *logger.Logger
}

func NewHandler(sessions *Registry, adv *advisor.Advisor, authService *auth.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{sessions: sessions, advisor: adv, auth: authService, log: log.With("service", "Handler")}
}

// Session resolves the device's synchronizer and stores it on the context.
// A device id is minted when the client sends none. A valid bearer token
// switches the session to that account if it is not already on it.
func (h *Handler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		device := c.GetHeader(DeviceHeader)
		if device == "" {
			device = uuid.NewString()
		} else if _, err := uuid.Parse(device); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_device", errors.New("X-Device-ID must be a UUID"))
			return
		}
		c.Header(DeviceHeader, device)

		var identity *domain.Identity
		if token, ok := bearerToken(c); ok {
			id, err := h.auth.Verify(token)
			if err != nil {
				RespondError(c, http.StatusUnauthorized, "invalid_token", err)
				return
			}
			identity = id
			c.Set(tokenKey, true)
		}

		s, err := h.sessions.Get(c.Request.Context(), device, identity)
		if err != nil {
			h.log.Error("failed to open session", "device", device, "error", err)
			RespondError(c, http.StatusInternalServerError, "session_unavailable", err)
			return
		}
		if identity != nil {
			if cur := s.State().Identity; cur == nil || cur.ID != identity.ID {
				s.Identify(c.Request.Context(), identity)
			}
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// RequireToken rejects requests that reach a signed-in session without the
// account's bearer token. Anonymous sessions need none.
func (h *Handler) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionFrom(c).State().Identity
		if id != nil && !id.Anonymous && !c.GetBool(tokenKey) {
			RespondError(c, http.StatusUnauthorized, "token_required", errors.New("signed-in sessions need a bearer token"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func sessionFrom(c *gin.Context) *synchronizer.Synchronizer {
	return c.MustGet(sessionKey).(*synchronizer.Synchronizer)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) Catalog(c *gin.Context) {
	RespondOK(c, gin.H{"sections": domain.Catalog})
}

func (h *Handler) GetState(c *gin.Context) {
	RespondOK(c, newStateView(sessionFrom(c).State()))
}

func (h *Handler) SetStep(c *gin.Context) {
	var req struct {
		Step string `json:"step"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	step, err := synchronizer.ParseStep(req.Step)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_step", err)
		return
	}
	s := sessionFrom(c)
	s.SetStep(step)
	RespondOK(c, newStateView(s.State()))
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	identity, token, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	case errors.Is(err, auth.ErrEmailTaken):
		RespondError(c, http.StatusConflict, "email_taken", err)
		return
	case err != nil:
		h.log.Error("sign up failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "signup_failed", errors.New("could not create account"))
		return
	}
	h.signedIn(c, identity, token, http.StatusCreated)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	identity, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	case err != nil:
		h.log.Error("sign in failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "signin_failed", errors.New("could not sign in"))
		return
	}
	h.signedIn(c, identity, token, http.StatusOK)
}

func (h *Handler) signedIn(c *gin.Context, identity *domain.Identity, token string, status int) {
	s := sessionFrom(c)
	s.Identify(c.Request.Context(), identity)
	c.JSON(status, gin.H{"token": token, "state": newStateView(s.State())})
}

func (h *Handler) SignOut(c *gin.Context) {
	s := sessionFrom(c)
	s.SignOut()
	RespondOK(c, newStateView(s.State()))
}

func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := sessionFrom(c).LoadDraft(c.Request.Context())
	if err != nil {
		h.log.Warn("failed to load draft", "error", err)
	}
	RespondOK(c, gin.H{"draft": draft})
}

func (h *Handler) SaveDraft(c *gin.Context) {
	var answers domain.ProfileAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sessionFrom(c).SaveDraft(answers)
	c.Status(http.StatusAccepted)
}

func (h *Handler) SubmitAssessment(c *gin.Context) {
	var answers domain.ProfileAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if problems := domain.Validate(answers); len(problems) > 0 {
		RespondValidation(c, problems)
		return
	}
	s := sessionFrom(c)
	s.SubmitProfileAnswers(answers)
	c.JSON(http.StatusCreated, newStateView(s.State()))
}

func (h *Handler) GenerateRecommendations(c *gin.Context) {
	s := sessionFrom(c)
	st := s.State()
	if st.Assessment == nil {
		RespondError(c, http.StatusConflict, "assessment_required", errors.New("complete the assessment first"))
		return
	}
	s.ClearError()
	s.SetLoading(true)
	recs := h.advisor.Recommend(c.Request.Context(), *st.Assessment)
	s.SubmitRecommendations(recs)
	s.SetLoading(false)
	RespondOK(c, newStateView(s.State()))
}

func (h *Handler) AnalyzeSkills(c *gin.Context) {
	var req struct {
		CareerIndex int `json:"careerIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	s := sessionFrom(c)
	st := s.State()
	if st.Assessment == nil || len(st.Recommendations) == 0 {
		RespondError(c, http.StatusConflict, "recommendations_required", errors.New("complete the assessment and get recommendations first"))
		return
	}
	if req.CareerIndex < 0 || req.CareerIndex >= len(st.Recommendations) {
		RespondError(c, http.StatusBadRequest, "invalid_career", errors.New("careerIndex is out of range"))
		return
	}
	analysis := h.advisor.AnalyzeSkills(st.Assessment.Skills(), st.Recommendations[req.CareerIndex])
	s.SubmitSkillAnalysis(analysis)
	RespondOK(c, newStateView(s.State()))
}

func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		RespondError(c, http.StatusBadRequest, "invalid_message", errors.New("message is required"))
		return
	}
	s := sessionFrom(c)
	st := s.State()
	if len(st.ChatHistory) == 0 {
		s.AppendChatMessage(domain.ChatMessage{Sender: domain.SenderAssistant, Text: advisor.Welcome(st.Assessment)})
		st = s.State()
	}

	s.AppendChatMessage(domain.ChatMessage{Sender: domain.SenderUser, Text: req.Message})
	s.SetLoading(true)
	text := h.advisor.Reply(c.Request.Context(), req.Message, st.ChatHistory, st.Assessment)
	reply, _ := s.AppendChatMessage(domain.ChatMessage{Sender: domain.SenderAssistant, Text: text})
	s.SetLoading(false)

	RespondOK(c, gin.H{"reply": reply, "state": newStateView(s.State())})
}

func (h *Handler) Dashboard(c *gin.Context) {
	RespondOK(c, newDashboardView(sessionFrom(c).State()))
}

func (h *Handler) Reset(c *gin.Context) {
	s := sessionFrom(c)
	if err := s.Reset(c.Request.Context()); err != nil {
		h.log.Warn("reset could not purge local cache", "error", err)
		s.SetError("saved data could not be cleared")
	}
	RespondOK(c, newStateView(s.State()))
}

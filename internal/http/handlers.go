package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/log"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/queue"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/repo"
)

// Store is what the handlers need from the persistence layer. *repo.Store
// satisfies it; tests plug an in-memory double.
type Store interface {
	Ping(ctx context.Context) error
	InsertParticipant(ctx context.Context, p *domain.Participant) error
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	FindParticipantByName(ctx context.Context, name string) (*domain.Participant, error)
	TouchParticipant(ctx context.Context, name string, seen time.Time) error
	InsertMessage(ctx context.Context, m *domain.Message) error
	ListMessagesFor(ctx context.Context, user string, limit int64) ([]domain.Message, error)
}

type Handler struct {
	Store           Store
	Pub             queue.Publisher
	Redis           *repo.Redis
	RateLimitPerMin int

	rl *RateLimiter
}

func NewHandler(store Store, pub queue.Publisher, rds *repo.Redis, rlPerMin int) *Handler {
	return &Handler{
		Store:           store,
		Pub:             pub,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
		rl:              NewRateLimiter(rlPerMin, time.Minute),
	}
}

// userHeader is the request-scoped identity. A placeholder mechanism,
// not a security boundary.
func userHeader(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("User"))
}

type participantReq struct {
	Name string `json:"name" binding:"required"`
}

// CreateParticipant godoc
// @Summary Register a participant
// @Tags participants
// @Accept json
// @Param payload body participantReq true "name"
// @Success 201
// @Failure 409 {object} map[string]string
// @Failure 422 {array} string
// @Router /participants [post]
func (h *Handler) CreateParticipant(c *gin.Context) {
	var in participantReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, bindErrors(err))
		return
	}

	now := time.Now()
	p := &domain.Participant{Name: in.Name, LastSeenAt: now.UTC()}
	if err := h.Store.InsertParticipant(c.Request.Context(), p); err != nil {
		if errors.Is(err, repo.ErrNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "name already registered"})
			return
		}
		log.Errorf("insert participant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	joined := &domain.Message{
		From: p.Name,
		To:   domain.Broadcast,
		Text: domain.JoinText,
		Type: domain.TypeStatus,
		Time: now.Format(domain.TimeLayout),
	}
	if err := h.Store.InsertMessage(c.Request.Context(), joined); err != nil {
		log.Errorf("insert join message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	_ = h.Pub.Publish(c.Request.Context(), queue.Exchange, queue.KeyParticipantJoined,
		queue.ParticipantJoined{Name: p.Name, At: joined.Time},
		c.GetString(requestIDKey))

	c.Status(http.StatusCreated)
}

// ListParticipants godoc
// @Summary List current participants
// @Tags participants
// @Produce json
// @Success 200 {array} domain.Participant
// @Router /participants [get]
func (h *Handler) ListParticipants(c *gin.Context) {
	out, err := h.Store.ListParticipants(c.Request.Context())
	if err != nil {
		log.Errorf("list participants: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if out == nil {
		out = []domain.Participant{}
	}
	c.JSON(http.StatusOK, out)
}

type messageReq struct {
	To   string `json:"to"   binding:"required"`
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required,oneof=message private_message"`
}

// CreateMessage godoc
// @Summary Post a message
// @Tags messages
// @Accept json
// @Param User header string true "sender name"
// @Param payload body messageReq true "to, text, type(message|private_message)"
// @Success 201
// @Failure 422 {array} string
// @Router /messages [post]
func (h *Handler) CreateMessage(c *gin.Context) {
	var in messageReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, bindErrors(err))
		return
	}

	from := userHeader(c)
	sender, err := h.Store.FindParticipantByName(c.Request.Context(), from)
	if err != nil {
		log.Errorf("find sender %q: %v", from, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if sender == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user must be an active participant"})
		return
	}

	m := &domain.Message{
		From: from,
		To:   in.To,
		Text: in.Text,
		Type: in.Type,
		Time: time.Now().Format(domain.TimeLayout),
	}
	if err := h.Store.InsertMessage(c.Request.Context(), m); err != nil {
		log.Errorf("insert message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	_ = h.Pub.Publish(c.Request.Context(), queue.Exchange, queue.KeyMessagePosted,
		queue.MessagePosted{From: m.From, To: m.To, Type: m.Type},
		c.GetString(requestIDKey))

	c.Status(http.StatusCreated)
}

// ListMessages godoc
// @Summary Read visible message history
// @Tags messages
// @Param User header string true "requesting user"
// @Param limit query int false "max messages, most recent first selected"
// @Produce json
// @Success 200 {array} domain.Message
// @Failure 422 {object} map[string]string
// @Router /messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = int64(n)
	}

	msgs, err := h.Store.ListMessagesFor(c.Request.Context(), userHeader(c), limit)
	if err != nil {
		log.Errorf("list messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

// Heartbeat godoc
// @Summary Refresh a participant's last-seen time
// @Tags participants
// @Param User header string true "participant name"
// @Success 200
// @Failure 404
// @Router /status [post]
func (h *Handler) Heartbeat(c *gin.Context) {
	user := userHeader(c)
	err := h.Store.TouchParticipant(c.Request.Context(), user, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("touch participant %q: %v", user, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

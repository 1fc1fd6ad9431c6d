package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valuecompare/backend/internal/domain"
	"github.com/valuecompare/backend/internal/usecase"
)

const (
	notEnoughItemsMessage = "Please add at least 2 items to compare."
	mixedUnitsWarning     = "Count items cannot be converted to weight or volume - compare like with like"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions *usecase.SessionService
	labels   *usecase.LabelParser
	maxItems int
}

// NewHandler creates a new HTTP handler
func NewHandler(sessions *usecase.SessionService, labels *usecase.LabelParser) *Handler {
	if labels == nil {
		labels = usecase.NewLabelParser(false)
	}
	maxItems := usecase.DefaultMaxItems
	if sessions != nil {
		maxItems = sessions.MaxItems()
	}
	return &Handler{
		sessions: sessions,
		labels:   labels,
		maxItems: maxItems,
	}
}

// CompareRequest is the body of a stateless comparison
type CompareRequest struct {
	Items []usecase.ItemInput `json:"items"`
}

// ParseLabelRequest is the body of a label parse request
type ParseLabelRequest struct {
	Name string `json:"name" binding:"required"`
}

// comparisonResponse decorates a result with the labels the result cards need
type comparisonResponse struct {
	*domain.ComparisonResult
	UnitLabel string `json:"unitLabel"`
	Warning   string `json:"warning,omitempty"`
}

func newComparisonResponse(result *domain.ComparisonResult, items []domain.Item) comparisonResponse {
	resp := comparisonResponse{
		ComparisonResult: result,
		UnitLabel:        usecase.CommonUnitLabel(items).DisplayName(),
	}
	if result.MixedUnits {
		resp.Warning = mixedUnitsWarning
	}
	return resp
}

// sessionResponse is a session with its held result decorated for display
type sessionResponse struct {
	ID         string              `json:"id"`
	Items      []domain.Item       `json:"items"`
	ItemCount  int                 `json:"itemCount"`
	CanCompare bool                `json:"canCompare"`
	Result     *comparisonResponse `json:"result"`
}

func newSessionResponse(session *domain.Session) sessionResponse {
	resp := sessionResponse{
		ID:         session.ID,
		Items:      session.Items,
		ItemCount:  len(session.Items),
		CanCompare: len(session.Items) >= usecase.MinCompareItems,
	}
	if session.Result != nil {
		r := newComparisonResponse(session.Result, session.Items)
		resp.Result = &r
	}
	return resp
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "valuecompare-backend",
		"version": "1.0.0",
	})
}

// ListUnits returns the supported size units
func (h *Handler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"units": domain.Units()})
}

// Compare ranks the posted items without creating a session
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Items) < usecase.MinCompareItems {
		respondError(c, domain.ErrNotEnoughItems)
		return
	}
	if len(req.Items) > h.maxItems {
		respondError(c, domain.ErrTooManyItems)
		return
	}

	items := make([]domain.Item, 0, len(req.Items))
	for i, input := range req.Items {
		item, err := usecase.NewItem(input)
		if err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field, "index": i})
				return
			}
			respondError(c, err)
			return
		}
		items = append(items, item)
	}

	result := usecase.CompareItems(items)
	c.JSON(http.StatusOK, newComparisonResponse(&result, items))
}

// ParseLabel suggests quantity, size and unit for a product label
func (h *Handler) ParseLabel(c *gin.Context) {
	var req ParseLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	c.JSON(http.StatusOK, h.labels.ParseLabel(req.Name))
}

// CreateSession starts a new comparison session
func (h *Handler) CreateSession(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	session, err := h.sessions.CreateSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// GetSession returns a session's items and held result
func (h *Handler) GetSession(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	session, err := h.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// DeleteSession discards a session
func (h *Handler) DeleteSession(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	if err := h.sessions.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddItem validates and appends an item to a session
func (h *Handler) AddItem(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	var input usecase.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, item, err := h.sessions.AddItem(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":    item,
		"session": newSessionResponse(session),
		"message": item.Name + " has been added to the comparison.",
	})
}

// ClearItems removes all items from a session
func (h *Handler) ClearItems(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	session, err := h.sessions.ClearItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// CompareSession ranks a session's items and holds the result
func (h *Handler) CompareSession(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	session, err := h.sessions.Compare(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newComparisonResponse(session.Result, session.Items))
}

// LoadDemo fills a session with the example comparison
func (h *Handler) LoadDemo(c *gin.Context) {
	if !h.requireSessions(c) {
		return
	}

	session, err := h.sessions.LoadDemo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// requireSessions answers 501 when the handler was built without a session service
func (h *Handler) requireSessions(c *gin.Context) bool {
	if h.sessions == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Sessions not configured"})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
	case errors.Is(err, domain.ErrNotEnoughItems):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": notEnoughItemsMessage})
	case errors.Is(err, domain.ErrTooManyItems):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Too many items in this comparison"})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/ratelimit"
)

// Response messages of POST /api/contact.
const (
	MsgSaved            = "Message saved successfully"
	MsgMissingFields    = "Missing required fields"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgSaveFailed       = "Failed to save message. Please check server logs."
	MsgRateLimited      = "Too many messages. Please try again later."
)

// ContactHandler serves the contact form endpoint.
type ContactHandler struct {
	logger  *zap.Logger
	service *contact.Service
	limiter ratelimit.Limiter
	hasher  *IPHasher
}

// NewContactHandler creates a ContactHandler. limiter may be nil.
func NewContactHandler(logger *zap.Logger, service *contact.Service, limiter ratelimit.Limiter, hasher *IPHasher) *ContactHandler {
	return &ContactHandler{
		logger:  logger,
		service: service,
		limiter: limiter,
		hasher:  hasher,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// Submit handles every method on /api/contact; only POST reaches the store.
func (h *ContactHandler) Submit(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.logger.Info("contact method not allowed", zap.String("method", c.Request.Method))
		h.service.Record(contact.OutcomeMethodNotAllowed)
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, contactResponse{Message: MsgMethodNotAllowed})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(c.Request.Context(), h.hasher.Hash(c.ClientIP())) {
		h.logger.Warn("contact rate limited")
		h.service.Record(contact.OutcomeRateLimited)
		c.JSON(http.StatusTooManyRequests, contactResponse{Message: MsgRateLimited})
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid contact payload", zap.Error(err))
		h.service.Record(contact.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, contactResponse{Message: MsgMissingFields})
		return
	}

	id, err := h.service.Submit(c.Request.Context(), contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	switch {
	case contact.IsValidation(err):
		c.JSON(http.StatusBadRequest, contactResponse{Message: MsgMissingFields})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, contactResponse{Message: MsgSaveFailed})
		return
	}

	c.JSON(http.StatusOK, contactResponse{Message: MsgSaved, ID: id})
}

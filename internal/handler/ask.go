package handler

import (
	"errors"
	"net/http"
	"time"

	"travelbot/internal/model"
	"travelbot/internal/service"

	"github.com/gin-gonic/gin"
)

// AskHandler serves the question/answer agents: FAQ, loyalty program and
// flight amenity details.
type AskHandler struct {
	faq     *service.RetrievalAnswerer
	loyalty *service.RetrievalAnswerer
	amenity *service.AmenityAgent
}

// NewAskHandler creates a new ask handler
func NewAskHandler(faq, loyalty *service.RetrievalAnswerer, amenity *service.AmenityAgent) *AskHandler {
	return &AskHandler{faq: faq, loyalty: loyalty, amenity: amenity}
}

// AskFAQ handles POST /api/v1/faq
func (h *AskHandler) AskFAQ(c *gin.Context) {
	h.answerWith(c, h.faq)
}

// AskLoyalty handles POST /api/v1/loyalty
func (h *AskHandler) AskLoyalty(c *gin.Context) {
	h.answerWith(c, h.loyalty)
}

func (h *AskHandler) answerWith(c *gin.Context, answerer *service.RetrievalAnswerer) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if answerer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Retrieval agent is not configured"})
		return
	}

	start := time.Now()
	answer, err := answerer.Answer(c.Request.Context(), req.Question)
	if err != nil {
		writeAgentError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AskResponse{
		Answer: answer,
		Took:   time.Since(start).Milliseconds(),
	})
}

// AskFlightDetails handles POST /api/v1/flights/details
func (h *AskHandler) AskFlightDetails(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	start := time.Now()
	answer, err := h.amenity.Answer(c.Request.Context(), req.Question)
	if err != nil {
		writeAgentError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AskResponse{
		Answer: answer,
		Took:   time.Since(start).Milliseconds(),
	})
}

// GetFlightFeatures handles GET /api/v1/flights/:number
func (h *AskHandler) GetFlightFeatures(c *gin.Context) {
	feature, err := h.amenity.Lookup(c.Param("number"))
	if err != nil {
		writeAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, feature)
}

// writeAgentError maps the service error taxonomy onto HTTP statuses
func writeAgentError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	var extErr *service.ExternalServiceError
	var malErr *service.MalformedResponseError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, service.ErrNoMatches):
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching records found"})
	case errors.As(err, &extErr), errors.As(err, &malErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

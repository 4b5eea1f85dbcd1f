package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quotes-api/internal/auth"
	"quotes-api/internal/domain"
	"quotes-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	quotes service.QuoteService
	tokens *auth.Manager
}

func NewHandler(users service.UserService, quotes service.QuoteService, tokens *auth.Manager) *Handler {
	return &Handler{
		users:  users,
		quotes: quotes,
		tokens: tokens,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/signup/", h.signup)
		api.POST("/token/", h.token)
		api.POST("/token/refresh/", h.refreshToken)

		api.GET("/quotes/random/", h.randomQuote)

		quotes := api.Group("/quotes", h.authRequired())
		{
			quotes.GET("/", h.listQuotes)
			quotes.POST("/", h.createQuote)
			quotes.GET("/:id/", h.getQuote)
			quotes.PUT("/:id/", h.updateQuote)
			quotes.PATCH("/:id/", h.updateQuote)
			quotes.DELETE("/:id/", h.deleteQuote)
		}

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, verr.Fields)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "no active account found with the given credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	access, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "token is invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

type createQuoteRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (h *Handler) createQuote(c *gin.Context) {
	user := currentUser(c)

	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), user.ID, req.Text, req.Author)
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quoteToResponse(*quote))
}

func (h *Handler) listQuotes(c *gin.Context) {
	quotes, err := h.quotes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	resp := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		resp[i] = quoteToResponse(quotes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getQuote(c *gin.Context) {
	id, ok := quoteID(c)
	if !ok {
		return
	}

	quote, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteToResponse(*quote))
}

type updateQuoteRequest struct {
	Text   *string `json:"text"`
	Author *string `json:"author"`
}

func (h *Handler) updateQuote(c *gin.Context) {
	user := currentUser(c)

	id, ok := quoteID(c)
	if !ok {
		return
	}

	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	// PUT is a full replace of the client-settable fields, so text must be
	// present; PATCH may touch any subset.
	if c.Request.Method == http.MethodPut && req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"text": []string{"text is required"}})
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), user.ID, id, service.QuoteUpdate{
		Text:   req.Text,
		Author: req.Author,
	})
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteToResponse(*quote))
}

func (h *Handler) deleteQuote(c *gin.Context) {
	user := currentUser(c)

	id, ok := quoteID(c)
	if !ok {
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.writeQuoteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// randomQuote is public. An empty quote set is a success with a message,
// not an error.
func (h *Handler) randomQuote(c *gin.Context) {
	quote, err := h.quotes.Random(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	if quote == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No quotes yet"})
		return
	}

	c.JSON(http.StatusOK, quoteToResponse(*quote))
}

func (h *Handler) writeQuoteError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to perform this action"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}

func quoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid quote id"})
		return 0, false
	}
	return id, true
}

type QuoteResponse struct {
	ID                int64  `json:"id"`
	Text              string `json:"text"`
	Author            string `json:"author"`
	CreatedBy         int64  `json:"created_by"`
	CreatedByUsername string `json:"created_by_username"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func quoteToResponse(quote domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                quote.ID,
		Text:              quote.Text,
		Author:            quote.Author,
		CreatedBy:         quote.CreatedBy,
		CreatedByUsername: quote.CreatedByUsername,
		CreatedAt:         quote.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         quote.UpdatedAt.Format(time.RFC3339),
	}
}

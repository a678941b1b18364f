package chatbot

import (
	"context"
	"errors"
	"log"
	"net/http"

	"LearnScout/be/internal/auth"
	"LearnScout/be/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	limiter ratelimit.Store
}

func NewController(service Service, limiter ratelimit.Store) *Controller {
	return &Controller{service: service, limiter: limiter}
}

func (c *Controller) RegisterRoutes(router *gin.Engine, authn *auth.Middleware) {
	group := router.Group("/v1", authn.Optional())
	group.POST("/chat", c.Chat)
	group.POST("/chat/stream", c.ChatStream)
}

func (c *Controller) Chat(ctx *gin.Context) {
	req, ok := c.admit(ctx)
	if !ok {
		return
	}

	response, err := c.service.Respond(ctx.Request.Context(), req)
	if err != nil {
		log.Printf("chat failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Service temporarily unavailable"})
		return
	}

	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.JSON(http.StatusOK, ChatResponse{Response: response})
}

func (c *Controller) ChatStream(ctx *gin.Context) {
	req, ok := c.admit(ctx)
	if !ok {
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	err := c.service.StreamRespond(ctx.Request.Context(), req, ctx.Writer)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client disconnected mid-stream.
			return
		}
		log.Printf("chat stream failed: %v", err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
	}
}

// admit binds, validates and rate-limits one chat request.
func (c *Controller) admit(ctx *gin.Context) (ChatRequest, bool) {
	if !c.limiter.Allow(auth.UserID(ctx)) {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		return ChatRequest{}, false
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return ChatRequest{}, false
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ChatRequest{}, false
	}
	return req, true
}

package discovery

import (
	"errors"
	"log"
	"net/http"

	"LearnScout/be/internal/auth"
	"LearnScout/be/internal/content"
	"LearnScout/be/internal/scorer"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	scorer  scorer.Service
	history HistoryRecorder
}

func NewController(service Service, scorerSvc scorer.Service, history HistoryRecorder) *Controller {
	return &Controller{service: service, scorer: scorerSvc, history: history}
}

func (c *Controller) RegisterRoutes(router *gin.Engine, authn *auth.Middleware) {
	group := router.Group("/v1", authn.Optional())
	group.POST("/search", c.Search)
	group.POST("/content/availability", c.CheckAvailability)
	group.POST("/summary", c.GenerateSummary)
}

func (c *Controller) Search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	level := content.ParseLevel(req.LearningLevel)
	result, err := c.service.Search(ctx.Request.Context(), req.Query, level)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		log.Printf("search failed for %q: %v", req.Query, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed, try again"})
		return
	}

	if userID := auth.UserID(ctx); userID != auth.AnonymousID && c.history != nil {
		if err := c.history.RecordSearch(ctx.Request.Context(), userID, req.Query, level, result.TotalResults); err != nil {
			log.Printf("recording search history: %v", err)
		}
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var req AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	availability, err := c.service.CheckAvailability(ctx.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		log.Printf("availability check failed for %q: %v", req.Query, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Content availability check failed"})
		return
	}
	ctx.JSON(http.StatusOK, availability)
}

// GenerateSummary exposes the relevance scorer directly, so clients can
// analyze a single item outside a full search.
func (c *Controller) GenerateSummary(ctx *gin.Context) {
	var in scorer.Input
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "title and query are required"})
		return
	}
	if in.ContentType == "" {
		in.ContentType = content.Video
	}

	ctx.JSON(http.StatusOK, c.scorer.Score(ctx.Request.Context(), in))
}

package tracking

import (
	"errors"
	"net/http"
	"strconv"

	"LearnScout/be/internal/auth"

	"github.com/gin-gonic/gin"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) RegisterRoutes(router *gin.Engine, authn *auth.Middleware) {
	group := router.Group("/v1", authn.Required())
	group.GET("/history", c.History)
	group.POST("/notes", c.CreateNote)
	group.GET("/notes", c.ListNotes)
	group.DELETE("/notes/:id", c.DeleteNote)
	group.PUT("/progress", c.SaveProgress)
	group.GET("/progress", c.ListProgress)
}

func (c *ControllerImpl) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	records, err := c.service.History(ctx.Request.Context(), auth.UserID(ctx), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"history": records})
}

func (c *ControllerImpl) CreateNote(ctx *gin.Context) {
	var req CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	id, err := c.service.CreateNote(ctx.Request.Context(), auth.UserID(ctx), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

func (c *ControllerImpl) ListNotes(ctx *gin.Context) {
	notes, err := c.service.Notes(ctx.Request.Context(), auth.UserID(ctx), ctx.Query("topic"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notes"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (c *ControllerImpl) DeleteNote(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if err := c.service.DeleteNote(ctx.Request.Context(), auth.UserID(ctx), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) SaveProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := c.service.SaveProgress(ctx.Request.Context(), auth.UserID(ctx), req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save progress"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) ListProgress(ctx *gin.Context) {
	progress, err := c.service.ProgressFor(ctx.Request.Context(), auth.UserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"progress": progress})
}

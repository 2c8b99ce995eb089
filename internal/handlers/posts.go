package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"perch/internal/engagement"
	"perch/pkg/middleware"
	"perch/pkg/models"
	"perch/pkg/pagination"
)

// GetPost returns the fully resolved detail view of one post
func GetPost(c *gin.Context) {
	postID := c.Param("id")

	start := time.Now()
	detail, err := svc.GetPostDetail(c.Request.Context(), postID)
	recordAggregation("post_detail", start, err)
	if err != nil {
		respondAggregationError(c, err, "Failed to get post detail")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": detail})
}

// GetPostChildren returns one page of a post's children of the requested kind
func GetPostChildren(c *gin.Context) {
	parentID := c.Param("id")

	kind, ok := models.ParsePostKind(c.Query("kind"))
	if !ok || !kind.IsChildKind() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of comment, reshare, quote"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(pagination.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be an integer"})
		return
	}
	pageSize = pagination.ClampPageSize(pageSize)

	start := time.Now()
	result, err := svc.GetChildren(c.Request.Context(), parentID, kind, page, pageSize)
	recordAggregation("children", start, err)
	if err != nil {
		respondAggregationError(c, err, "Failed to get post children")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     result.Posts,
		"total":     result.Total,
		"page":      page,
		"page_size": pageSize,
	})
}

func recordAggregation(op string, start time.Time, err error) {
	if aggregations == nil || aggregationLatency == nil {
		return
	}
	status := "ok"
	switch {
	case errors.Is(err, engagement.ErrInvalidArgument):
		status = "invalid_argument"
	case errors.Is(err, engagement.ErrNotFound):
		status = "not_found"
	case errors.Is(err, engagement.ErrStoreUnavailable):
		status = "store_unavailable"
	case err != nil:
		status = "error"
	}
	aggregations.WithLabelValues(op, status).Inc()
	aggregationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func respondAggregationError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, engagement.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engagement.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, engagement.ErrStoreUnavailable):
		middleware.GetContextLogger(c, logger).WithError(err).Error(logMsg)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
	default:
		middleware.GetContextLogger(c, logger).WithError(err).Error(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}

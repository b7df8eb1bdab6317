package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/LJTian/VnNewsHub/internal/collector"
	"github.com/LJTian/VnNewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

// NewsLister 由各存储实现提供
type NewsLister interface {
	ListNews(ctx context.Context, f storage.ListFilter) ([]storage.News, error)
}

// Trigger 异步触发单个来源的采集
type Trigger interface {
	RunSource(name string)
}

type Server struct {
	store   NewsLister
	trigger Trigger
	sources []string
}

// NewServer sources 为启用的来源名；trigger 为 nil 时不开放手动采集
func NewServer(store NewsLister, trigger Trigger, sources []string) *Server {
	return &Server{store: store, trigger: trigger, sources: sources}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
		v1.GET("/sources", s.listSources)
		v1.POST("/collect/:source", s.collect)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listNews(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	items, err := s.store.ListNews(c.Request.Context(), storage.ListFilter{
		Source:   c.Query("source"),
		Category: c.Query("category"),
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}
	if items == nil {
		items = []storage.News{}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func (s *Server) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.sources,
	})
}

func (s *Server) collect(c *gin.Context) {
	name := c.Param("source")
	if s.trigger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "unavailable",
			"message": "collect is disabled",
		})
		return
	}
	if !collector.Has(name) || !s.enabled(name) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "unknown source: " + name,
		})
		return
	}
	s.trigger.RunSource(name)
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "ok",
		"message": "collect started",
		"data":    gin.H{"source": name},
	})
}

func (s *Server) enabled(name string) bool {
	for _, n := range s.sources {
		if n == name {
			return true
		}
	}
	return false
}

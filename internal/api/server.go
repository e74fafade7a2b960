// Package api exposes the dialogue engine and its administration surfaces
// over HTTP.
package api

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartcs-core/server/internal/agent/graph"
	"github.com/smartcs-core/server/internal/agent/model"
	"github.com/smartcs-core/server/internal/agent/tools"
)

type Server struct {
	engine   *graph.Engine
	store    model.SessionStore
	registry *tools.Registry

	startTime    time.Time
	requestCount atomic.Int64
}

func NewServer(engine *graph.Engine, store model.SessionStore, registry *tools.Registry) *Server {
	return &Server{
		engine:    engine,
		store:     store,
		registry:  registry,
		startTime: time.Now(),
	}
}

// Routes builds the gin router with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/chat", s.handleChat)
	r.GET("/health", s.handleHealth)
	r.GET("/sessions", s.handleListSessions)
	r.DELETE("/sessions/:id", s.handleDeleteSession)
	r.GET("/tools", s.handleListTools)
	r.POST("/tools/reload", s.handleReloadTool)

	return r
}

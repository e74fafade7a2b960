package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartcs-core/server/internal/agent/tools"
	logx "github.com/smartcs-core/server/pkg/logger"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c *gin.Context) {
	s.requestCount.Add(1)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "消息内容不能为空"})
		return
	}

	result, err := s.engine.Process(c.Request.Context(), req.Message, req.SessionID)
	if err != nil {
		// The engine already converted the failure into an apologetic,
		// persisted turn; surface the result and log the cause.
		logx.Error().Err(err).Str("session_id", req.SessionID).Msg("chat turn failed")
	}
	if result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "内部服务器错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"response":       result.Response,
		"session_id":     result.SessionID,
		"current_intent": result.CurrentIntent,
		"tool_used":      result.ToolUsed,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	storeStatus := "healthy"
	activeSessions := 0
	if infos, err := s.store.List(c.Request.Context()); err != nil {
		storeStatus = "unhealthy"
	} else {
		activeSessions = len(infos)
	}

	status := http.StatusOK
	overall := "healthy"
	if storeStatus != "healthy" {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": gin.H{
			"store": storeStatus,
			"tools": "healthy",
		},
		"metrics": gin.H{
			"total_requests":  s.requestCount.Load(),
			"active_sessions": activeSessions,
			"uptime_seconds":  time.Since(s.startTime).Seconds(),
		},
	})
}

func (s *Server) handleListSessions(c *gin.Context) {
	infos, err := s.store.List(c.Request.Context())
	if err != nil {
		logx.Error().Err(err).Msg("failed to list sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "内部服务器错误"})
		return
	}

	sessions := make(gin.H, len(infos))
	for _, info := range infos {
		sessions[info.ID] = gin.H{
			"last_activity": info.LastActivity.Format(time.RFC3339),
			"message_count": info.MessageCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"active_sessions": len(infos),
		"sessions":        sessions,
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	deleted, err := s.store.Delete(c.Request.Context(), sessionID)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to delete session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "内部服务器错误"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "会话不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "会话 " + sessionID + " 已删除"})
}

func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.registry.Names()})
}

type reloadToolRequest struct {
	ToolName string `json:"tool_name"`
}

// handleReloadTool re-seeds one tool from the default suite, swapping the
// registry entry atomically.
func (s *Server) handleReloadTool(c *gin.Context) {
	var req reloadToolRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ToolName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "插件名称不能为空"})
		return
	}

	fn, ok := tools.Defaults()[req.ToolName]
	if !ok || !s.registry.Replace(req.ToolName, fn) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "插件不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "插件 " + req.ToolName + " 重新加载成功"})
}

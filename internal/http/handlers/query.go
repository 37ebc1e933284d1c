package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/http/response"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/services"
)

// QueryHandler serves the onboarding query form: one call builds the first
// roadmap and the dashboard that tracks it.
type QueryHandler struct {
	log      *logger.Logger
	roadmaps services.RoadmapService
}

func NewQueryHandler(log *logger.Logger, roadmaps services.RoadmapService) *QueryHandler {
	return &QueryHandler{log: log.With("handler", "QueryHandler"), roadmaps: roadmaps}
}

type queryRequest struct {
	UserID string `json:"userId"`
	Skill  string `json:"skill"`
	Level  string `json:"level"`
	Goal   string `json:"goal"`
}

// POST /api/query
func (h *QueryHandler) Submit(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Skill) == "" {
		response.RespondErr(c, apierr.InvalidArgument("all fields required"))
		return
	}
	userID, err := requireSelf(c, req.UserID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	out, err := h.roadmaps.BuildRoadmap(c.Request.Context(), services.BuildRoadmapInput{
		UserID: userID,
		Skill:  req.Skill,
		Level:  req.Level,
		Goal:   req.Goal,
	})
	if err != nil {
		h.log.Error("Submit query failed", "error", err, "user_id", userID)
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message":   "Roadmap and dashboard ready",
		"roadmap":   out.Roadmap,
		"dashboard": out.Dashboard,
	})
}

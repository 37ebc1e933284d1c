package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/http/response"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/services"
)

type DashboardHandler struct {
	log        *logger.Logger
	dashboards services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboards services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), dashboards: dashboards}
}

// GET /api/dashboard/:userId
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := requireSelf(c, c.Param("userId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	view, err := h.dashboards.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("GetDashboard failed", "error", err, "user_id", userID)
		response.RespondErr(c, err)
		return
	}
	if !view.HasRoadmap {
		response.RespondOK(c, gin.H{"hasRoadmap": false})
		return
	}
	response.RespondOK(c, gin.H{"hasRoadmap": true, "dashboard": view.Dashboard})
}

type ensureDashboardRequest struct {
	UserID    string `json:"userId"`
	RoadmapID string `json:"roadmapId"`
}

// POST /api/dashboard
func (h *DashboardHandler) EnsureDashboard(c *gin.Context) {
	var req ensureDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	userID, err := requireSelf(c, req.UserID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var link *uuid.UUID
	if raw := strings.TrimSpace(req.RoadmapID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondErr(c, apierr.InvalidArgument("invalid roadmap id %q", raw))
			return
		}
		link = &id
	}
	out, err := h.dashboards.EnsureDashboard(c.Request.Context(), userID, link)
	if err != nil {
		h.log.Error("EnsureDashboard failed", "error", err, "user_id", userID)
		response.RespondErr(c, err)
		return
	}
	if out.Created {
		response.RespondCreated(c, gin.H{"message": "Dashboard created", "dashboard": out.Dashboard})
		return
	}
	response.RespondOK(c, gin.H{"message": "Dashboard already exists", "dashboard": out.Dashboard})
}

type updateDashboardRequest struct {
	CurrentStreak *int `json:"currentStreak"`
}

// PUT /api/dashboard/:userId
func (h *DashboardHandler) UpdateDashboard(c *gin.Context) {
	userID, err := requireSelf(c, c.Param("userId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req updateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	if req.CurrentStreak == nil {
		response.RespondErr(c, apierr.InvalidArgument("currentStreak is required"))
		return
	}
	updated, err := h.dashboards.UpdateStreak(c.Request.Context(), userID, *req.CurrentStreak)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Dashboard updated", "updated": updated})
}

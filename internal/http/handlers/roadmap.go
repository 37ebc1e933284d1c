package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/http/response"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/services"
)

type RoadmapHandler struct {
	log      *logger.Logger
	roadmaps services.RoadmapService
}

func NewRoadmapHandler(log *logger.Logger, roadmaps services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{
		log:      log.With("handler", "RoadmapHandler"),
		roadmaps: roadmaps,
	}
}

type createRoadmapRequest struct {
	UserID string `json:"userId"`
	Skill  string `json:"skill"`
	Level  string `json:"level"`
	Goal   string `json:"goal"`
}

// POST /api/roadmap
func (h *RoadmapHandler) CreateRoadmap(c *gin.Context) {
	var req createRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Skill) == "" || strings.TrimSpace(req.Level) == "" {
		response.RespondErr(c, apierr.InvalidArgument("missing required fields"))
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
		h.log.Error("CreateRoadmap failed", "error", err, "user_id", userID)
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Roadmap created", "roadmap": out.Roadmap})
}

// GET /api/roadmap/user/:userId
func (h *RoadmapHandler) GetLatestForUser(c *gin.Context) {
	userID, err := requireSelf(c, c.Param("userId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	rm, err := h.roadmaps.GetLatestRoadmap(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rm)
}

// GET /api/roadmap/user/:userId/all
func (h *RoadmapHandler) ListForUser(c *gin.Context) {
	userID, err := requireSelf(c, c.Param("userId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	list, err := h.roadmaps.ListRoadmaps(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListForUser failed", "error", err, "user_id", userID)
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roadmaps": list})
}

// GET /api/roadmap/:id
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	me, err := requester(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	id, err := roadmapID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	rm, err := h.roadmaps.GetRoadmap(c.Request.Context(), id, me)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rm)
}

type updateRoadmapRequest struct {
	Skill *string `json:"skill"`
	Level *string `json:"level"`
	Goal  *string `json:"goal"`
}

// PUT /api/roadmap/:id
func (h *RoadmapHandler) UpdateRoadmap(c *gin.Context) {
	me, err := requester(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	id, err := roadmapID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	var req updateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	updated, err := h.roadmaps.UpdateRoadmap(c.Request.Context(), services.UpdateRoadmapInput{
		RoadmapID:   id,
		RequesterID: me,
		Skill:       req.Skill,
		Level:       req.Level,
		Goal:        req.Goal,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Roadmap updated", "updated": updated})
}

// PUT /api/roadmap/:id/step/:stepIndex/complete
func (h *RoadmapHandler) CompleteStep(c *gin.Context) {
	me, err := requester(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	id, err := roadmapID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	idx, err := strconv.Atoi(strings.TrimSpace(c.Param("stepIndex")))
	if err != nil {
		response.RespondErr(c, apierr.InvalidArgument("invalid step index"))
		return
	}
	out, err := h.roadmaps.CompleteStep(c.Request.Context(), services.CompleteStepInput{
		RoadmapID:   id,
		StepIndex:   idx,
		RequesterID: me,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":       "Step completed successfully",
		"roadmap":       out.Roadmap,
		"completedStep": out.CompletedStep,
	})
}

// DELETE /api/roadmap/:id
func (h *RoadmapHandler) DeleteRoadmap(c *gin.Context) {
	me, err := requester(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	id, err := roadmapID(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	deleted, err := h.roadmaps.DeleteRoadmap(c.Request.Context(), id, me)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Roadmap deleted successfully", "deletedRoadmap": deleted})
}

package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/ctxutil"
)

// requester returns the authenticated user id or an Unauthorized error.
func requester(c *gin.Context) (string, error) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == "" {
		return "", apierr.Unauthorized("missing or invalid token")
	}
	return userID, nil
}

// requireSelf rejects requests that name a user other than the caller.
func requireSelf(c *gin.Context, userID string) (string, error) {
	me, err := requester(c)
	if err != nil {
		return "", err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apierr.InvalidArgument("user id is required")
	}
	if userID != me {
		return "", apierr.Forbidden("cannot access another user's data")
	}
	return userID, nil
}

func roadmapID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return uuid.Nil, apierr.InvalidArgument("invalid roadmap id %q", c.Param("id"))
	}
	return id, nil
}

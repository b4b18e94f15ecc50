package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respondSuccess(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{"data": data, "success": true})
}

func respondError(c *gin.Context, status int, message, code string) {
	body := gin.H{"error": message, "success": false}
	if code != "" {
		body["code"] = code
	}
	c.JSON(status, body)
}

// respondServiceError maps the typed service error onto the wire; anything
// unrecognized becomes a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respondError(c, svcErr.Status, svcErr.Message, svcErr.Code)
		return
	}
	respondError(c, http.StatusInternalServerError, "Internal Server Error", "")
}

// currentUserID pulls the authenticated user from the context set by the
// auth middleware. A missing or malformed value aborts with 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated", "")
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID format", "")
		return uuid.Nil, false
	}
	return userID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format", "")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid ID format", "")
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ColumnHandler struct {
	columns *service.ColumnService
}

func NewColumnHandler(columns *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

type RenameColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

type CollapseColumnRequest struct {
	IsCollapsed *bool `json:"isCollapsed" binding:"required"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"columnIds" binding:"required"`
}

func (h *ColumnHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	columns, err := h.columns.ListBoardColumns(c.Request.Context(), boardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"columns": columns})
}

// CreateDisabled answers POST on a board's column collection. Boards keep a
// fixed set of columns, so the route exists only to report that.
func (h *ColumnHandler) CreateDisabled(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, "Column creation is not available", "COLUMN_CREATE_DISABLED")
}

func (h *ColumnHandler) DeleteDisabled(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, "Column deletion is not available", "COLUMN_DELETE_DISABLED")
}

func (h *ColumnHandler) Rename(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RenameColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	column, err := h.columns.RenameColumn(c.Request.Context(), columnID, userID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"column": column})
}

func (h *ColumnHandler) Collapse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CollapseColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsCollapsed == nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	column, err := h.columns.ToggleColumnCollapse(c.Request.Context(), columnID, userID, *req.IsCollapsed)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"column": column})
}

func (h *ColumnHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	columnIDs, ok := parseIDs(c, req.ColumnIDs)
	if !ok {
		return
	}

	columns, err := h.columns.ReorderColumns(c.Request.Context(), boardID, userID, columnIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"columns": columns})
}

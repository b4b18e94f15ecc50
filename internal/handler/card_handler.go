package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards *service.CardService
}

func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type MoveCardRequest struct {
	TargetColumnID uuid.UUID `json:"targetColumnId" binding:"required"`
	Index          *int      `json:"index" binding:"required"`
}

type ReorderCardsRequest struct {
	CardIDs []string `json:"cardIds" binding:"required"`
}

func (h *CardHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cards, err := h.cards.ListCards(c.Request.Context(), columnID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"cards": cards})
}

func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	card, err := h.cards.CreateCard(c.Request.Context(), columnID, userID, service.CreateCardInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"card": card})
}

func (h *CardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.cards.GetCardDetail(c.Request.Context(), cardID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"card": card})
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	card, err := h.cards.UpdateCard(c.Request.Context(), cardID, userID, service.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"card": card})
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(c.Request.Context(), cardID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	card, err := h.cards.MoveCard(c.Request.Context(), cardID, userID, req.TargetColumnID, *req.Index)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"card": card})
}

func (h *CardHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", "")
		return
	}

	cardIDs, ok := parseIDs(c, req.CardIDs)
	if !ok {
		return
	}

	cards, err := h.cards.ReorderCards(c.Request.Context(), columnID, userID, cardIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"cards": cards})
}

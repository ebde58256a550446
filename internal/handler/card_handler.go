package handler

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cardRepo repository.CardRepositoryInterface
}

func NewCardHandler(cardRepo repository.CardRepositoryInterface) *CardHandler {
	return &CardHandler{cardRepo: cardRepo}
}

type CreateCardRequest struct {
	Content string `json:"content"`
	ListID  string `json:"listId"`
}

// MoveCardRequest is the confirmation a client sends after projecting a move
// locally. NewPosition is a pointer so that 0 can be told apart from "absent".
type MoveCardRequest struct {
	NewListID   string `json:"newListId" binding:"required"`
	NewPosition *int   `json:"newPosition" binding:"required"`
}

type MoveCardResponse struct {
	Success bool `json:"success"`
}

// Create appends a card to the end of a list.
// @Summary  Create card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    request body CreateCardRequest true "Card"
// @Success  201 {object} CardResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" || req.ListID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "Content and listId are required"})
		return
	}

	card := &model.Card{Content: req.Content, ListID: parseID(req.ListID)}
	err := h.cardRepo.Create(c.Request.Context(), userID, card)
	if errors.Is(err, repository.ErrListNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "List not found or access denied"})
		return
	}
	if err != nil {
		internalError(c, "create card", err)
		return
	}

	c.JSON(http.StatusCreated, newCardResponse(*card))
}

// @Summary  Cards of a list in display order
// @Tags     Cards
// @Produce  json
// @Param    listId query string true "List ID"
// @Success  200 {array} CardResponse
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/cards [get]
func (h *CardHandler) GetByList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID := c.Query("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "listId is required"})
		return
	}

	cards, err := h.cardRepo.GetByListID(c.Request.Context(), userID, parseID(listID))
	if errors.Is(err, repository.ErrListNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "List not found or access denied"})
		return
	}
	if err != nil {
		internalError(c, "get cards", err)
		return
	}

	response := make([]CardResponse, len(cards))
	for i, card := range cards {
		response[i] = newCardResponse(card)
	}
	c.JSON(http.StatusOK, response)
}

// Move overwrites a card's list and position. Other cards are not renumbered.
// @Summary  Move card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id      path string          true "Card ID"
// @Param    request body MoveCardRequest true "Target"
// @Success  200 {object} MoveCardResponse
// @Failure  400 {object} ErrorResponse
// @Failure  401 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/cards/{id}/move [patch]
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "newListId and newPosition are required"})
		return
	}
	if *req.NewPosition < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "newPosition must be non-negative"})
		return
	}
	if *req.NewPosition > math.MaxInt32 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "newPosition is out of range"})
		return
	}

	cardID := c.Param("id")
	_, err := h.cardRepo.Move(c.Request.Context(), userID, parseID(cardID), parseID(req.NewListID), *req.NewPosition)
	switch {
	case errors.Is(err, repository.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "Card not found or access denied"})
		return
	case errors.Is(err, repository.ErrDestinationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "Destination list not found or access denied"})
		return
	case err != nil:
		internalError(c, "move card "+cardID, err)
		return
	}

	c.JSON(http.StatusOK, MoveCardResponse{Success: true})
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface) *BoardHandler {
	return &BoardHandler{boardRepo: boardRepo}
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

// Create creates a new board for the authenticated user
// @Summary  Create board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    request body CreateBoardRequest true "Board"
// @Success  201 {object} BoardResponse
// @Failure  400 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "Name is required"})
		return
	}

	board := &model.Board{Name: req.Name, OwnerID: userID}
	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		internalError(c, "create board", err)
		return
	}

	c.JSON(http.StatusCreated, newBoardResponse(*board))
}

// @Summary  List the caller's boards
// @Tags     Boards
// @Produce  json
// @Success  200 {array} BoardResponse
// @Security BearerAuth
// @Router   /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.GetOwned(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "get boards", err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		response[i] = newBoardResponse(board)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	board, err := h.boardRepo.GetOwnedByID(c.Request.Context(), userID, parseID(c.Param("id")))
	if errors.Is(err, repository.ErrBoardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "Board not found or access denied"})
		return
	}
	if err != nil {
		internalError(c, "get board", err)
		return
	}

	c.JSON(http.StatusOK, newBoardResponse(*board))
}

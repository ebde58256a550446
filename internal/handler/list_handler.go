package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	listRepo repository.ListRepositoryInterface
}

func NewListHandler(listRepo repository.ListRepositoryInterface) *ListHandler {
	return &ListHandler{listRepo: listRepo}
}

type CreateListRequest struct {
	Name    string `json:"name"`
	BoardID string `json:"boardId"`
}

// Create appends a list to the end of a board; the position is assigned by the server.
// @Summary  Create list
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    request body CreateListRequest true "List"
// @Success  201 {object} ListResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || req.BoardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "Name and boardId are required"})
		return
	}

	list := &model.List{Name: req.Name, BoardID: parseID(req.BoardID)}
	err := h.listRepo.Create(c.Request.Context(), userID, list)
	if errors.Is(err, repository.ErrBoardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "Board not found or access denied"})
		return
	}
	if err != nil {
		internalError(c, "create list", err)
		return
	}

	c.JSON(http.StatusCreated, newListResponse(*list))
}

// @Summary  Lists of a board in display order
// @Tags     Lists
// @Produce  json
// @Param    boardId query string true "Board ID"
// @Success  200 {array} ListResponse
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /api/lists [get]
func (h *ListHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boardID := c.Query("boardId")
	if boardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "boardId is required"})
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), userID, parseID(boardID))
	if errors.Is(err, repository.ErrBoardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "Board not found or access denied"})
		return
	}
	if err != nil {
		internalError(c, "get lists", err)
		return
	}

	response := make([]ListResponse, len(lists))
	for i, list := range lists {
		response[i] = newListResponse(list)
	}
	c.JSON(http.StatusOK, response)
}

package handler

import (
	"log"
	"net/http"
	"time"

	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BoardID   string    `json:"board_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type CardResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ListID    string    `json:"list_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Err string `json:"err"`
}

func newBoardResponse(b model.Board) BoardResponse {
	return BoardResponse{ID: b.ID.String(), Name: b.Name, OwnerID: b.OwnerID, CreatedAt: b.CreatedAt}
}

func newListResponse(l model.List) ListResponse {
	return ListResponse{ID: l.ID.String(), Name: l.Name, BoardID: l.BoardID.String(), Position: l.Position, CreatedAt: l.CreatedAt}
}

func newCardResponse(c model.Card) CardResponse {
	return CardResponse{ID: c.ID.String(), Content: c.Content, ListID: c.ListID.String(), Position: c.Position, CreatedAt: c.CreatedAt}
}

// currentUser fetches the verified caller or answers 401 itself.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "Unauthorized"})
	}
	return userID, ok
}

// parseID turns a malformed id into uuid.Nil, which matches no row. A bad id
// and someone else's id must produce the same answer.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func internalError(c *gin.Context, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"err": "Internal Server Error"})
}

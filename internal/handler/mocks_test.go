package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetOwned(ctx context.Context, ownerID string) ([]model.Board, error) {
	args := m.Called(ctx, ownerID)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardRepository) GetOwnedByID(ctx context.Context, ownerID string, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, ownerID, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(ctx context.Context, ownerID string, list *model.List) error {
	args := m.Called(ctx, ownerID, list)
	return args.Error(0)
}

func (m *MockListRepository) GetByBoardID(ctx context.Context, ownerID string, boardID uuid.UUID) ([]model.List, error) {
	args := m.Called(ctx, ownerID, boardID)
	lists, _ := args.Get(0).([]model.List)
	return lists, args.Error(1)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, ownerID string, card *model.Card) error {
	args := m.Called(ctx, ownerID, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByListID(ctx context.Context, ownerID string, listID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, ownerID, listID)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

func (m *MockCardRepository) Move(ctx context.Context, ownerID string, cardID, listID uuid.UUID, position int) (*model.Card, error) {
	args := m.Called(ctx, ownerID, cardID, listID, position)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

type testDeps struct {
	boards *MockBoardRepository
	lists  *MockListRepository
	cards  *MockCardRepository
}

// setupTest wires the handlers behind a stand-in for the auth middleware.
// An empty userID leaves the request unauthenticated.
func setupTest(userID string) (*gin.Engine, testDeps) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	deps := testDeps{
		boards: new(MockBoardRepository),
		lists:  new(MockListRepository),
		cards:  new(MockCardRepository),
	}
	boardHandler := handler.NewBoardHandler(deps.boards)
	listHandler := handler.NewListHandler(deps.lists)
	cardHandler := handler.NewCardHandler(deps.cards)

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	api.GET("/boards", boardHandler.GetAll)
	api.POST("/boards", boardHandler.Create)
	api.GET("/boards/:id", boardHandler.GetByID)
	api.GET("/lists", listHandler.GetByBoard)
	api.POST("/lists", listHandler.Create)
	api.GET("/cards", cardHandler.GetByList)
	api.POST("/cards", cardHandler.Create)
	api.PATCH("/cards/:id/move", cardHandler.Move)

	return r, deps
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

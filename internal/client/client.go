// Package client talks to the task board REST API.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API. The server answers 404
// for both missing and foreign resources.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BoardID   string    `json:"board_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Card struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ListID    string    `json:"list_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var boards []Board
	err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards)
	return boards, err
}

func (c *Client) CreateBoard(ctx context.Context, name string) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPost, "/api/boards", map[string]string{"name": name}, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) ListLists(ctx context.Context, boardID string) ([]List, error) {
	var lists []List
	err := c.do(ctx, http.MethodGet, "/api/lists?boardId="+url.QueryEscape(boardID), nil, &lists)
	return lists, err
}

func (c *Client) CreateList(ctx context.Context, boardID, name string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPost, "/api/lists", map[string]string{"name": name, "boardId": boardID}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ListCards(ctx context.Context, listID string) ([]Card, error) {
	var cards []Card
	err := c.do(ctx, http.MethodGet, "/api/cards?listId="+url.QueryEscape(listID), nil, &cards)
	return cards, err
}

func (c *Client) CreateCard(ctx context.Context, listID, content string) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodPost, "/api/cards", map[string]string{"content": content, "listId": listID}, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// MoveCard places the card at position in listID.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string, position int) error {
	body := struct {
		NewListID   string `json:"newListId"`
		NewPosition int    `json:"newPosition"`
	}{listID, position}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/cards/"+url.PathEscape(cardID)+"/move", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New("move card: server did not confirm the move")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var payload struct {
			Err string `json:"err"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Err != "" {
			apiErr.Message = payload.Err
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

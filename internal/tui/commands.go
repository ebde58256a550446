package tui

import (
	"context"
	"time"

	"taskboard/internal/client"
	"taskboard/internal/projector"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const requestTimeout = 10 * time.Second

// BoardAPI is the subset of the REST client the TUI needs.
type BoardAPI interface {
	ListBoards(ctx context.Context) ([]client.Board, error)
	CreateBoard(ctx context.Context, name string) (*client.Board, error)
	ListLists(ctx context.Context, boardID string) ([]client.List, error)
	CreateList(ctx context.Context, boardID, name string) (*client.List, error)
	ListCards(ctx context.Context, listID string) ([]client.Card, error)
	CreateCard(ctx context.Context, listID, content string) (*client.Card, error)
	MoveCard(ctx context.Context, cardID, listID string, position int) error
}

var _ BoardAPI = (*client.Client)(nil)

type boardsLoadedMsg struct {
	boards []client.Board
	err    error
}

type boardLoadedMsg struct {
	board client.Board
	lists []client.List
	cards map[string][]client.Card
	err   error
}

type boardCreatedMsg struct {
	board *client.Board
	err   error
}

type listCreatedMsg struct {
	list *client.List
	err  error
}

type cardCreatedMsg struct {
	card *client.Card
	err  error
}

// moveResultMsg reports the server's answer for one pending move.
type moveResultMsg struct {
	moveID uuid.UUID
	err    error
}

func (a *App) loadBoards() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		boards, err := a.api.ListBoards(ctx)
		return boardsLoadedMsg{boards: boards, err: err}
	}
}

func (a *App) loadBoard(board client.Board) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		lists, err := a.api.ListLists(ctx, board.ID)
		if err != nil {
			return boardLoadedMsg{board: board, err: err}
		}
		cards := make(map[string][]client.Card, len(lists))
		for _, l := range lists {
			listCards, err := a.api.ListCards(ctx, l.ID)
			if err != nil {
				return boardLoadedMsg{board: board, err: err}
			}
			cards[l.ID] = listCards
		}
		return boardLoadedMsg{board: board, lists: lists, cards: cards}
	}
}

func (a *App) createBoard(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		board, err := a.api.CreateBoard(ctx, name)
		return boardCreatedMsg{board: board, err: err}
	}
}

func (a *App) createList(boardID, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := a.api.CreateList(ctx, boardID, name)
		return listCreatedMsg{list: list, err: err}
	}
}

func (a *App) createCard(listID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		card, err := a.api.CreateCard(ctx, listID, content)
		return cardCreatedMsg{card: card, err: err}
	}
}

// confirmMove sends a move that the projector has already applied locally.
func (a *App) confirmMove(move projector.PendingMove) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := a.api.MoveCard(ctx, move.CardID, move.TargetListID, move.TargetPosition)
		return moveResultMsg{moveID: move.ID, err: err}
	}
}

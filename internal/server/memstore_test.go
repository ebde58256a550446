package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// memDB is an in-memory stand-in for Postgres that keeps the same ownership
// and position rules as the gorm repositories.
type memDB struct {
	mu      sync.Mutex
	users   map[string]model.User
	boards  []model.Board
	lists   []model.List
	cards   []model.Card
	upserts int
}

func newMemDB() *memDB {
	return &memDB{users: map[string]model.User{}}
}

func (db *memDB) stores() Stores {
	return Stores{
		Boards: memBoards{db},
		Lists:  memLists{db},
		Cards:  memCards{db},
		Users:  memUsers{db},
	}
}

func (db *memDB) board(ownerID string, id uuid.UUID) (model.Board, bool) {
	for _, b := range db.boards {
		if b.ID == id && b.OwnerID == ownerID {
			return b, true
		}
	}
	return model.Board{}, false
}

func (db *memDB) list(ownerID string, id uuid.UUID) (model.List, bool) {
	for _, l := range db.lists {
		if l.ID == id {
			_, ok := db.board(ownerID, l.BoardID)
			return l, ok
		}
	}
	return model.List{}, false
}

type memUsers struct{ *memDB }

func (s memUsers) EnsureExists(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if _, ok := s.users[user.ID]; !ok {
		s.users[user.ID] = *user
	}
	return nil
}

type memBoards struct{ *memDB }

func (s memBoards) Create(_ context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	board.ID = uuid.New()
	board.CreatedAt = time.Now()
	s.boards = append(s.boards, *board)
	return nil
}

func (s memBoards) GetOwned(_ context.Context, ownerID string) ([]model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Board
	for _, b := range s.boards {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s memBoards) GetOwnedByID(_ context.Context, ownerID string, id uuid.UUID) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.board(ownerID, id)
	if !ok {
		return nil, repository.ErrBoardNotFound
	}
	return &b, nil
}

type memLists struct{ *memDB }

func (s memLists) Create(_ context.Context, ownerID string, list *model.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.board(ownerID, list.BoardID); !ok {
		return repository.ErrBoardNotFound
	}
	position := 0
	for _, l := range s.lists {
		if l.BoardID == list.BoardID {
			position++
		}
	}
	list.ID = uuid.New()
	list.Position = position
	list.CreatedAt = time.Now()
	s.lists = append(s.lists, *list)
	return nil
}

func (s memLists) GetByBoardID(_ context.Context, ownerID string, boardID uuid.UUID) ([]model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.board(ownerID, boardID); !ok {
		return nil, repository.ErrBoardNotFound
	}
	var out []model.List
	for _, l := range s.lists {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type memCards struct{ *memDB }

func (s memCards) Create(_ context.Context, ownerID string, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.list(ownerID, card.ListID); !ok {
		return repository.ErrListNotFound
	}
	position := 0
	for _, c := range s.cards {
		if c.ListID == card.ListID {
			position++
		}
	}
	card.ID = uuid.New()
	card.Position = position
	card.CreatedAt = time.Now()
	s.cards = append(s.cards, *card)
	return nil
}

func (s memCards) GetByListID(_ context.Context, ownerID string, listID uuid.UUID) ([]model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.list(ownerID, listID); !ok {
		return nil, repository.ErrListNotFound
	}
	var out []model.Card
	for _, c := range s.cards {
		if c.ListID == listID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s memCards) Move(_ context.Context, ownerID string, cardID, listID uuid.UUID, position int) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.cards {
		if c.ID == cardID {
			if _, ok := s.list(ownerID, c.ListID); ok {
				idx = i
			}
			break
		}
	}
	if idx < 0 {
		return nil, repository.ErrCardNotFound
	}
	if _, ok := s.list(ownerID, listID); !ok {
		return nil, repository.ErrDestinationNotFound
	}
	s.cards[idx].ListID = listID
	s.cards[idx].Position = position
	moved := s.cards[idx]
	return &moved, nil
}

package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

type ListRepositoryInterface interface {
	Create(ctx context.Context, ownerID string, list *model.List) error
	GetByBoardID(ctx context.Context, ownerID string, boardID uuid.UUID) ([]model.List, error)
}

var _ ListRepositoryInterface = (*ListRepository)(nil)

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create appends list to the end of its board. The board row stays locked from
// the ownership check until the insert commits.
func (r *ListRepository) Create(ctx context.Context, ownerID string, list *model.List) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board model.Board
		err := tx.Clauses(forUpdate("boards")).
			Where("id = ? AND owner_id = ?", list.BoardID, ownerID).
			Take(&board).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		if err != nil {
			return err
		}

		position, err := nextPosition(tx, &model.List{}, "board_id", board.ID)
		if err != nil {
			return err
		}

		if list.ID == uuid.Nil {
			list.ID = uuid.New()
		}
		list.Position = position
		return tx.Create(list).Error
	})
}

// GetByBoardID returns the board's lists in display order.
func (r *ListRepository) GetByBoardID(ctx context.Context, ownerID string, boardID uuid.UUID) ([]model.List, error) {
	db := r.db.WithContext(ctx)

	var board model.Board
	err := db.Select("id").Where("id = ? AND owner_id = ?", boardID, ownerID).Take(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}

	var lists []model.List
	err = db.Where("board_id = ?", boardID).Order("position, created_at").Find(&lists).Error
	return lists, err
}

package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, ownerID string, card *model.Card) error
	GetByListID(ctx context.Context, ownerID string, listID uuid.UUID) ([]model.Card, error)
	Move(ctx context.Context, ownerID string, cardID, listID uuid.UUID, position int) (*model.Card, error)
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ownedList resolves listID through its board. It returns nil, nil when the list
// does not exist or its board belongs to another user.
func ownedList(tx *gorm.DB, ownerID string, listID uuid.UUID, lock bool) (*model.List, error) {
	q := tx.Model(&model.List{}).
		Select("lists.*").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Where("lists.id = ? AND boards.owner_id = ?", listID, ownerID)
	if lock {
		q = q.Clauses(forUpdate("lists"))
	}

	var list model.List
	if err := q.Take(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

// Create appends card to the end of its list.
func (r *CardRepository) Create(ctx context.Context, ownerID string, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := ownedList(tx, ownerID, card.ListID, true)
		if err != nil {
			return err
		}
		if list == nil {
			return ErrListNotFound
		}

		position, err := nextPosition(tx, &model.Card{}, "list_id", list.ID)
		if err != nil {
			return err
		}

		if card.ID == uuid.Nil {
			card.ID = uuid.New()
		}
		card.Position = position
		return tx.Create(card).Error
	})
}

// GetByListID returns the list's cards in display order.
func (r *CardRepository) GetByListID(ctx context.Context, ownerID string, listID uuid.UUID) ([]model.Card, error) {
	db := r.db.WithContext(ctx)

	list, err := ownedList(db, ownerID, listID, false)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}

	var cards []model.Card
	err = db.Where("list_id = ?", listID).Order("position, created_at").Find(&cards).Error
	return cards, err
}

// Move puts the card in listID at position. Only the moved row is written; the
// remaining cards of the source and destination lists keep their positions, so
// picking a sensible position is up to the caller.
func (r *CardRepository) Move(ctx context.Context, ownerID string, cardID, listID uuid.UUID, position int) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Card{}).
			Select("cards.*").
			Joins("JOIN lists ON lists.id = cards.list_id").
			Joins("JOIN boards ON boards.id = lists.board_id").
			Where("cards.id = ? AND boards.owner_id = ?", cardID, ownerID).
			Clauses(forUpdate("cards")).
			Take(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		if err != nil {
			return err
		}

		target, err := ownedList(tx, ownerID, listID, true)
		if err != nil {
			return err
		}
		if target == nil {
			return ErrDestinationNotFound
		}

		if err := tx.Model(&model.Card{}).
			Where("id = ?", card.ID).
			Updates(map[string]any{"list_id": listID, "position": position}).Error; err != nil {
			return err
		}

		card.ListID = listID
		card.Position = position
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

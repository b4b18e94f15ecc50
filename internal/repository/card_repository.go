package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"
	"taskboard/internal/position"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	Save(ctx context.Context, card *model.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetMaxPosition(ctx context.Context, columnID uuid.UUID) (int, error)
	Move(ctx context.Context, cardID, targetColumnID uuid.UUID, index int) (*model.Card, error)
	Rebalance(ctx context.Context, columnID uuid.UUID, orderedIDs []uuid.UUID) error
	CopyBoardCards(ctx context.Context, sourceBoardID, targetBoardID uuid.UUID) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position").Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Save(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id).Error
}

func (r *CardRepository) GetMaxPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("column_id = ?", columnID).
		Scan(&maxPosition).Error
	return maxPosition.Max, err
}

// Move places the card at index within the target column. The target
// column's final order (with the moved card spliced in) is rewritten to
// canonical positions, and the card's column_id and position change in the
// same transaction, so sibling positions never collide at any observable
// instant.
func (r *CardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, index int) (*model.Card, error) {
	var moved model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var siblings []model.Card
		err := tx.Where("column_id = ? AND id <> ?", targetColumnID, cardID).
			Order("position").
			Find(&siblings).Error
		if err != nil {
			return err
		}

		if index < 0 {
			index = 0
		}
		if index > len(siblings) {
			index = len(siblings)
		}

		ordered := make([]uuid.UUID, 0, len(siblings)+1)
		for _, sibling := range siblings[:index] {
			ordered = append(ordered, sibling.ID)
		}
		ordered = append(ordered, cardID)
		for _, sibling := range siblings[index:] {
			ordered = append(ordered, sibling.ID)
		}

		for i, id := range ordered {
			updates := map[string]interface{}{"position": position.ForIndex(i)}
			if id == cardID {
				updates["column_id"] = targetColumnID
			}
			err := tx.Model(&model.Card{}).Where("id = ?", id).Updates(updates).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("id = ?", cardID).First(&moved).Error
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Rebalance rewrites every card position in the column to the canonical
// sequence in one transaction, preserving the given order.
func (r *CardRepository) Rebalance(ctx context.Context, columnID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, cardID := range orderedIDs {
			err := tx.Model(&model.Card{}).
				Where("id = ? AND column_id = ?", cardID, columnID).
				Update("position", position.ForIndex(index)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CopyBoardCards copies every card of the source board into the target
// board's position-matched columns in one transaction.
func (r *CardRepository) CopyBoardCards(ctx context.Context, sourceBoardID, targetBoardID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return copyBoardCards(tx, sourceBoardID, targetBoardID)
	})
}

// copyBoardCards matches source columns to target columns by position value,
// then copies each card's title, description, position, creator and
// timestamps verbatim. Order and spacing carry over without renumbering.
// Shared with BoardRepository.Duplicate so the whole duplication stays in
// one transaction.
func copyBoardCards(tx *gorm.DB, sourceBoardID, targetBoardID uuid.UUID) error {
	if sourceBoardID == targetBoardID {
		return nil
	}

	var sourceColumns []model.Column
	if err := tx.Where("board_id = ?", sourceBoardID).Find(&sourceColumns).Error; err != nil {
		return err
	}
	if len(sourceColumns) == 0 {
		return nil
	}

	var targetColumns []model.Column
	if err := tx.Where("board_id = ?", targetBoardID).Find(&targetColumns).Error; err != nil {
		return err
	}

	targetByPosition := make(map[int]uuid.UUID, len(targetColumns))
	for _, column := range targetColumns {
		targetByPosition[column.Position] = column.ID
	}

	for _, sourceColumn := range sourceColumns {
		targetColumnID, ok := targetByPosition[sourceColumn.Position]
		if !ok {
			continue
		}

		var sourceCards []model.Card
		err := tx.Where("column_id = ?", sourceColumn.ID).Order("position").Find(&sourceCards).Error
		if err != nil {
			return err
		}
		if len(sourceCards) == 0 {
			continue
		}

		copies := make([]model.Card, len(sourceCards))
		for i, card := range sourceCards {
			copies[i] = model.Card{
				ColumnID:    targetColumnID,
				Title:       card.Title,
				Description: card.Description,
				Position:    card.Position,
				CreatedBy:   card.CreatedBy,
				CreatedAt:   card.CreatedAt,
				UpdatedAt:   card.UpdatedAt,
			}
		}
		if err := tx.Create(&copies).Error; err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"
	"taskboard/internal/position"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

// ColumnWithCount is a column row annotated with its live card count.
type ColumnWithCount struct {
	Column    model.Column
	CardCount int
}

type ColumnRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetByBoardIDWithCardCounts(ctx context.Context, boardID uuid.UUID) ([]ColumnWithCount, error)
	Save(ctx context.Context, column *model.Column) error
	CardCount(ctx context.Context, columnID uuid.UUID) (int64, error)
	Rebalance(ctx context.Context, boardID uuid.UUID, orderedIDs []uuid.UUID) error
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) GetByBoardIDWithCardCounts(ctx context.Context, boardID uuid.UUID) ([]ColumnWithCount, error) {
	columns, err := r.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return []ColumnWithCount{}, nil
	}

	columnIDs := make([]uuid.UUID, len(columns))
	for i, column := range columns {
		columnIDs[i] = column.ID
	}

	var counts []struct {
		ColumnID uuid.UUID
		Count    int
	}
	err = r.db.WithContext(ctx).
		Model(&model.Card{}).
		Select("column_id, count(*) as count").
		Where("column_id IN ?", columnIDs).
		Group("column_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByColumn := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		countByColumn[c.ColumnID] = c.Count
	}

	result := make([]ColumnWithCount, len(columns))
	for i, column := range columns {
		result[i] = ColumnWithCount{Column: column, CardCount: countByColumn[column.ID]}
	}
	return result, nil
}

func (r *ColumnRepository) Save(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

func (r *ColumnRepository) CardCount(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

// Rebalance rewrites every column position to the canonical sequence in one
// transaction, preserving the given order.
func (r *ColumnRepository) Rebalance(ctx context.Context, boardID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, columnID := range orderedIDs {
			err := tx.Model(&model.Column{}).
				Where("id = ? AND board_id = ?", columnID, boardID).
				Update("position", position.ForIndex(index)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

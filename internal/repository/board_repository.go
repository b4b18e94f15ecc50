package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

// BoardWithMeta is a board row joined with the caller's role and live
// member/column counts.
type BoardWithMeta struct {
	Board       model.Board
	Role        string
	MemberCount int
	ColumnCount int
}

type BoardRepositoryInterface interface {
	CreateWithDefaults(ctx context.Context, board *model.Board, defaultColumns []model.Column) ([]model.Column, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Save(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]BoardWithMeta, error)
	CountMembers(ctx context.Context, boardID uuid.UUID) (int64, error)
	CountColumns(ctx context.Context, boardID uuid.UUID) (int64, error)
	Duplicate(ctx context.Context, sourceBoardID uuid.UUID, newBoard *model.Board) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithDefaults inserts the board, its owner membership and the default
// columns in one transaction so a board is never observable without them.
func (r *BoardRepository) CreateWithDefaults(ctx context.Context, board *model.Board, defaultColumns []model.Column) ([]model.Column, error) {
	columns := make([]model.Column, len(defaultColumns))
	copy(columns, defaultColumns)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}

		member := model.BoardMember{
			BoardID: board.ID,
			UserID:  board.OwnerID,
			Role:    model.RoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		for i := range columns {
			columns[i].BoardID = board.ID
		}
		if len(columns) > 0 {
			if err := tx.Create(&columns).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Save(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete removes the board row; columns, cards and memberships go with it
// through the schema's ON DELETE CASCADE.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}

// ListForUser returns every board the user holds any membership on, with the
// membership role and live counts, ordered by title.
func (r *BoardRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]BoardWithMeta, error) {
	var rows []struct {
		model.Board
		Role        string
		MemberCount int
		ColumnCount int
	}

	err := r.db.WithContext(ctx).
		Table("boards").
		Select(`boards.*, board_members.role,
			(SELECT count(*) FROM board_members bm WHERE bm.board_id = boards.id) AS member_count,
			(SELECT count(*) FROM columns c WHERE c.board_id = boards.id) AS column_count`).
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Order("boards.title").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]BoardWithMeta, len(rows))
	for i, row := range rows {
		result[i] = BoardWithMeta{
			Board:       row.Board,
			Role:        row.Role,
			MemberCount: row.MemberCount,
			ColumnCount: row.ColumnCount,
		}
	}
	return result, nil
}

func (r *BoardRepository) CountMembers(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *BoardRepository) CountColumns(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Column{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

// Duplicate creates newBoard with a fresh owner membership for its owner,
// copies the source columns verbatim (name, position, collapsed state) and
// copies every card into the position-matched column. All of it runs in a
// single transaction so a crash never leaves a half-copied board behind.
func (r *BoardRepository) Duplicate(ctx context.Context, sourceBoardID uuid.UUID, newBoard *model.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newBoard).Error; err != nil {
			return err
		}

		member := model.BoardMember{
			BoardID: newBoard.ID,
			UserID:  newBoard.OwnerID,
			Role:    model.RoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		var sourceColumns []model.Column
		if err := tx.Where("board_id = ?", sourceBoardID).Order("position").Find(&sourceColumns).Error; err != nil {
			return err
		}

		if len(sourceColumns) > 0 {
			copies := make([]model.Column, len(sourceColumns))
			for i, column := range sourceColumns {
				copies[i] = model.Column{
					BoardID:     newBoard.ID,
					Name:        column.Name,
					Position:    column.Position,
					IsCollapsed: column.IsCollapsed,
				}
			}
			if err := tx.Create(&copies).Error; err != nil {
				return err
			}
		}

		return copyBoardCards(tx, sourceBoardID, newBoard.ID)
	})
}

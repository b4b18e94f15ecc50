package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMemberRepository struct {
	db *gorm.DB
}

type BoardMemberRepositoryInterface interface {
	Get(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error)
	GetWithBoard(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error)
	Create(ctx context.Context, member *model.BoardMember) error
	UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) (*model.BoardMember, error)
	Delete(ctx context.Context, boardID, userID uuid.UUID) error
	CountOwners(ctx context.Context, boardID uuid.UUID) (int64, error)
}

var _ BoardMemberRepositoryInterface = (*BoardMemberRepository)(nil)

func NewBoardMemberRepository(db *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{db: db}
}

func (r *BoardMemberRepository) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	var member model.BoardMember
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetWithBoard resolves the membership together with its board in one pass.
// A missing membership and a missing board are indistinguishable to the
// caller, which is what keeps board existence from leaking to non-members.
func (r *BoardMemberRepository) GetWithBoard(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	var member model.BoardMember
	err := r.db.WithContext(ctx).
		Preload("Board").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *BoardMemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	var members []model.BoardMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = board_members.user_id").
		Where("board_members.board_id = ?", boardID).
		Order("users.name").
		Find(&members).Error
	return members, err
}

func (r *BoardMemberRepository) Create(ctx context.Context, member *model.BoardMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *BoardMemberRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) (*model.BoardMember, error) {
	result := r.db.WithContext(ctx).
		Model(&model.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, boardID, userID)
}

func (r *BoardMemberRepository) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.BoardMember{}).Error
}

func (r *BoardMemberRepository) CountOwners(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BoardMember{}).
		Where("board_id = ? AND role = ?", boardID, model.RoleOwner).
		Count(&count).Error
	return count, err
}

package service_test

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithDefaults(ctx context.Context, board *model.Board, defaultColumns []model.Column) ([]model.Column, error) {
	args := m.Called(ctx, board, defaultColumns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Save(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.BoardWithMeta, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BoardWithMeta), args.Error(1)
}

func (m *MockBoardRepository) CountMembers(ctx context.Context, boardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoardRepository) CountColumns(ctx context.Context, boardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoardRepository) Duplicate(ctx context.Context, sourceBoardID uuid.UUID, newBoard *model.Board) error {
	args := m.Called(ctx, sourceBoardID, newBoard)
	return args.Error(0)
}

type MockBoardMemberRepository struct {
	mock.Mock
}

func (m *MockBoardMemberRepository) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	args := m.Called(ctx, boardID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) GetWithBoard(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	args := m.Called(ctx, boardID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) Create(ctx context.Context, member *model.BoardMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockBoardMemberRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) (*model.BoardMember, error) {
	args := m.Called(ctx, boardID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

func (m *MockBoardMemberRepository) CountOwners(ctx context.Context, boardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).(int64), args.Error(1)
}

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnRepository) GetByBoardIDWithCardCounts(ctx context.Context, boardID uuid.UUID) ([]repository.ColumnWithCount, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ColumnWithCount), args.Error(1)
}

func (m *MockColumnRepository) Save(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) CardCount(ctx context.Context, columnID uuid.UUID) (int64, error) {
	args := m.Called(ctx, columnID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockColumnRepository) Rebalance(ctx context.Context, boardID uuid.UUID, orderedIDs []uuid.UUID) error {
	args := m.Called(ctx, boardID, orderedIDs)
	return args.Error(0)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Card), args.Error(1)
}

func (m *MockCardRepository) Save(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) GetMaxPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, index int) (*model.Card, error) {
	args := m.Called(ctx, cardID, targetColumnID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardRepository) Rebalance(ctx context.Context, columnID uuid.UUID, orderedIDs []uuid.UUID) error {
	args := m.Called(ctx, columnID, orderedIDs)
	return args.Error(0)
}

func (m *MockCardRepository) CopyBoardCards(ctx context.Context, sourceBoardID, targetBoardID uuid.UUID) error {
	args := m.Called(ctx, sourceBoardID, targetBoardID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// membership builds a BoardMember with the board preloaded, the shape
// GetWithBoard returns.
func membership(boardID, userID uuid.UUID, role string) *model.BoardMember {
	return &model.BoardMember{
		ID:      uuid.New(),
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
		Board:   model.Board{ID: boardID, Title: "Test Board", OwnerID: userID},
	}
}

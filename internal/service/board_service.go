package service

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/position"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// defaultColumns seeds every new board.
var defaultColumns = []model.Column{
	{Name: "To Do", Position: position.ForIndex(0)},
	{Name: "In Progress", Position: position.ForIndex(1)},
	{Name: "Done", Position: position.ForIndex(2)},
}

type BoardService struct {
	boardRepo  repository.BoardRepositoryInterface
	memberRepo repository.BoardMemberRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	columns    *ColumnService
	cards      *CardService
	access     *AccessGate
}

func NewBoardService(
	boardRepo repository.BoardRepositoryInterface,
	memberRepo repository.BoardMemberRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	columns *ColumnService,
	cards *CardService,
	access *AccessGate,
) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		columns:    columns,
		cards:      cards,
		access:     access,
	}
}

type CreateBoardInput struct {
	Title       string
	Description *string
	OwnerID     uuid.UUID
}

type UpdateBoardInput struct {
	Title       *string
	Description *string
}

func (s *BoardService) ListBoardsForUser(ctx context.Context, userID uuid.UUID) ([]BoardSummary, error) {
	rows, err := s.boardRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	boards := make([]BoardSummary, len(rows))
	for i, row := range rows {
		boards[i] = mapBoardSummary(row.Board, row.Role, row.MemberCount, row.ColumnCount)
	}
	return boards, nil
}

// CreateBoard inserts the board, the owner membership and the three default
// columns in one transaction and returns the full detail view.
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (*BoardDetail, error) {
	board := &model.Board{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	columns, err := s.boardRepo.CreateWithDefaults(ctx, board, defaultColumns)
	if err != nil {
		return nil, NewError("Failed to create board", http.StatusInternalServerError, CodeBoardCreateFailed)
	}

	detail := BoardDetail{
		Board:   mapBoardSummary(*board, model.RoleOwner, 1, len(columns)),
		Columns: make([]BoardColumnDetail, len(columns)),
	}
	for i, column := range columns {
		detail.Columns[i] = BoardColumnDetail{
			ColumnWithMeta: mapColumn(column, 0),
			Cards:          []CardSummary{},
		}
	}
	return &detail, nil
}

// GetBoardDetail assembles the board summary plus every column populated
// with its ordered cards. An aggregate read composed from the column and
// card services, not a single query.
func (s *BoardService) GetBoardDetail(ctx context.Context, boardID, userID uuid.UUID) (*BoardDetail, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanViewBoard, "Forbidden", CodeBoardForbidden); err != nil {
		return nil, err
	}

	columns, err := s.columns.ListBoardColumns(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	columnsWithCards := make([]BoardColumnDetail, len(columns))
	for i, column := range columns {
		cards, err := s.cards.listCards(ctx, column.ID)
		if err != nil {
			return nil, err
		}
		columnsWithCards[i] = BoardColumnDetail{ColumnWithMeta: column, Cards: cards}
	}

	memberCount, err := s.boardRepo.CountMembers(ctx, boardID)
	if err != nil {
		return nil, err
	}

	return &BoardDetail{
		Board:   mapBoardSummary(access.Board, access.Membership.Role, int(memberCount), len(columns)),
		Columns: columnsWithCards,
	}, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, boardID, userID uuid.UUID, input UpdateBoardInput) (*BoardSummary, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanManageBoard, "Insufficient permissions", CodeBoardUpdateForbidden); err != nil {
		return nil, err
	}

	board := access.Board
	if input.Title != nil {
		board.Title = *input.Title
	}
	if input.Description != nil {
		board.Description = input.Description
	}
	if err := s.boardRepo.Save(ctx, &board); err != nil {
		return nil, err
	}

	return s.summarize(ctx, board, access.Membership.Role)
}

func (s *BoardService) SetBoardArchive(ctx context.Context, boardID, userID uuid.UUID, isArchived bool) (*BoardSummary, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanManageBoard, "Insufficient permissions", CodeBoardArchiveForbidden); err != nil {
		return nil, err
	}

	board := access.Board
	board.IsArchived = isArchived
	if err := s.boardRepo.Save(ctx, &board); err != nil {
		return nil, err
	}

	return s.summarize(ctx, board, access.Membership.Role)
}

// DeleteBoard hard-deletes the board; storage cascade removes columns,
// cards and memberships.
func (s *BoardService) DeleteBoard(ctx context.Context, boardID, userID uuid.UUID) error {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if err := AssertRole(access.Membership.Role, CanDeleteBoard, "Only owners can delete boards", CodeBoardDeleteForbidden); err != nil {
		return err
	}

	return s.boardRepo.Delete(ctx, boardID)
}

// DuplicateBoard deep-copies the board for the duplicating user, who becomes
// the sole owner of the copy. Memberships of the source board are not
// carried over. Columns and cards are copied inside a single transaction.
func (s *BoardService) DuplicateBoard(ctx context.Context, boardID, userID uuid.UUID, title *string) (*BoardDetail, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanManageBoard, "Insufficient permissions", CodeBoardDuplicateForbidden); err != nil {
		return nil, err
	}

	newTitle := access.Board.Title + " (Copy)"
	if title != nil {
		newTitle = *title
	}

	newBoard := &model.Board{
		Title:       newTitle,
		Description: access.Board.Description,
		OwnerID:     userID,
	}
	if err := s.boardRepo.Duplicate(ctx, boardID, newBoard); err != nil {
		return nil, NewError("Failed to duplicate board", http.StatusInternalServerError, CodeBoardDuplicateFailed)
	}

	return s.GetBoardDetail(ctx, newBoard.ID, userID)
}

func (s *BoardService) ListBoardMembers(ctx context.Context, boardID, userID uuid.UUID) ([]BoardMemberInfo, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanViewBoard, "Forbidden", CodeBoardForbidden); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	result := make([]BoardMemberInfo, len(members))
	for i, member := range members {
		result[i] = mapMember(member, member.User)
	}
	return result, nil
}

func (s *BoardService) AddBoardMember(ctx context.Context, boardID, targetUserID, actorID uuid.UUID, role string) (*BoardMemberInfo, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, actorID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanManageMembers, "Insufficient permissions", CodeBoardMemberForbidden); err != nil {
		return nil, err
	}

	if !model.IsValidRole(role) {
		return nil, NewError("Invalid role", http.StatusBadRequest, CodeInvalidRole)
	}

	if targetUserID == actorID {
		return nil, NewError("Cannot change your own membership", http.StatusBadRequest, CodeBoardMemberSelf)
	}

	targetUser, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if targetUser == nil {
		return nil, errUserNotFound()
	}

	existing, err := s.memberRepo.Get(ctx, boardID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewError("User is already a member", http.StatusConflict, CodeBoardMemberExists)
	}

	member := &model.BoardMember{
		BoardID: boardID,
		UserID:  targetUserID,
		Role:    role,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	info := mapMember(*member, *targetUser)
	return &info, nil
}

func (s *BoardService) UpdateBoardMemberRole(ctx context.Context, boardID, memberUserID, actorID uuid.UUID, role string) (*BoardMemberInfo, error) {
	if !model.IsValidRole(role) {
		return nil, NewError("Invalid role", http.StatusBadRequest, CodeInvalidRole)
	}

	access, err := s.access.GetBoardAccess(ctx, boardID, actorID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanManageMembers, "Insufficient permissions", CodeBoardMemberForbidden); err != nil {
		return nil, err
	}

	target, err := s.memberRepo.Get(ctx, boardID, memberUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errMemberNotFound()
	}

	if IsOwner(target.Role) {
		if !IsOwner(access.Membership.Role) {
			return nil, NewError("Cannot modify the owner", http.StatusForbidden, CodeBoardOwnerModifyForbidden)
		}
		if !IsOwner(role) {
			// The sole owner can never be demoted, not even by themself.
			owners, err := s.memberRepo.CountOwners(ctx, boardID)
			if err != nil {
				return nil, err
			}
			if owners <= 1 {
				return nil, NewError("Cannot modify the owner", http.StatusForbidden, CodeBoardOwnerModifyForbidden)
			}
		}
	}

	updated, err := s.memberRepo.UpdateRole(ctx, boardID, memberUserID, role)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errMemberNotFound()
	}

	targetUser, err := s.userRepo.GetByID(ctx, memberUserID)
	if err != nil {
		return nil, err
	}
	if targetUser == nil {
		return nil, errUserNotFound()
	}

	info := mapMember(*updated, *targetUser)
	return &info, nil
}

func (s *BoardService) RemoveBoardMember(ctx context.Context, boardID, memberUserID, actorID uuid.UUID) error {
	access, err := s.access.GetBoardAccess(ctx, boardID, actorID)
	if err != nil {
		return err
	}
	if err := AssertRole(access.Membership.Role, CanManageMembers, "Insufficient permissions", CodeBoardMemberForbidden); err != nil {
		return err
	}

	target, err := s.memberRepo.Get(ctx, boardID, memberUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return errMemberNotFound()
	}

	if IsOwner(target.Role) {
		return NewError("Cannot remove the board owner", http.StatusForbidden, CodeBoardOwnerRemoveForbidden)
	}

	return s.memberRepo.Delete(ctx, boardID, memberUserID)
}

func (s *BoardService) summarize(ctx context.Context, board model.Board, role string) (*BoardSummary, error) {
	memberCount, err := s.boardRepo.CountMembers(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	columnCount, err := s.boardRepo.CountColumns(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	summary := mapBoardSummary(board, role, int(memberCount), int(columnCount))
	return &summary, nil
}

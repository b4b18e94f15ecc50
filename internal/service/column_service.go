package service

import (
	"context"
	"net/http"
	"strings"

	"taskboard/internal/position"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

const maxColumnNameLength = 100

// ColumnService covers rename, collapse and reorder of a board's columns.
// Standalone column creation and deletion are disabled by design; columns
// exist only through board creation or duplication and vanish only with
// their board. The transport layer answers those routes with a fixed 405.
type ColumnService struct {
	columnRepo repository.ColumnRepositoryInterface
	access     *AccessGate
}

func NewColumnService(columnRepo repository.ColumnRepositoryInterface, access *AccessGate) *ColumnService {
	return &ColumnService{columnRepo: columnRepo, access: access}
}

func (s *ColumnService) ListBoardColumns(ctx context.Context, boardID, userID uuid.UUID) ([]ColumnWithMeta, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanViewBoard, "Forbidden", CodeBoardForbidden); err != nil {
		return nil, err
	}

	rows, err := s.columnRepo.GetByBoardIDWithCardCounts(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return mapColumns(rows), nil
}

func (s *ColumnService) RenameColumn(ctx context.Context, columnID, userID uuid.UUID, name string) (*ColumnWithMeta, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, errColumnNotFound()
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > maxColumnNameLength {
		return nil, NewError("Invalid column name", http.StatusBadRequest, CodeInvalidColumnName)
	}

	access, err := s.access.GetBoardAccess(ctx, column.BoardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanEditColumns, "Insufficient permissions", CodeColumnForbidden); err != nil {
		return nil, err
	}

	column.Name = trimmed
	if err := s.columnRepo.Save(ctx, column); err != nil {
		return nil, err
	}

	cardCount, err := s.columnRepo.CardCount(ctx, columnID)
	if err != nil {
		return nil, err
	}

	meta := mapColumn(*column, int(cardCount))
	return &meta, nil
}

func (s *ColumnService) ToggleColumnCollapse(ctx context.Context, columnID, userID uuid.UUID, isCollapsed bool) (*ColumnWithMeta, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, errColumnNotFound()
	}

	access, err := s.access.GetBoardAccess(ctx, column.BoardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanEditColumns, "Insufficient permissions", CodeColumnForbidden); err != nil {
		return nil, err
	}

	column.IsCollapsed = isCollapsed
	if err := s.columnRepo.Save(ctx, column); err != nil {
		return nil, err
	}

	cardCount, err := s.columnRepo.CardCount(ctx, columnID)
	if err != nil {
		return nil, err
	}

	meta := mapColumn(*column, int(cardCount))
	return &meta, nil
}

// ReorderColumns rewrites the board's column order from an explicit ID list.
// The list must be an exact permutation of the board's current columns;
// positions are rebalanced to canonical multiples of the gap in one
// transaction.
func (s *ColumnService) ReorderColumns(ctx context.Context, boardID, userID uuid.UUID, orderedColumnIDs []uuid.UUID) ([]ColumnWithMeta, error) {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := AssertRole(access.Membership.Role, CanEditColumns, "Insufficient permissions", CodeColumnForbidden); err != nil {
		return nil, err
	}

	existing, err := s.columnRepo.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	currentIDs := make([]uuid.UUID, len(existing))
	for i, column := range existing {
		currentIDs[i] = column.ID
	}

	if !position.ValidatePermutation(currentIDs, orderedColumnIDs) {
		return nil, NewError("Invalid column order", http.StatusBadRequest, CodeInvalidColumnOrder)
	}

	if err := s.columnRepo.Rebalance(ctx, boardID, orderedColumnIDs); err != nil {
		return nil, err
	}

	rows, err := s.columnRepo.GetByBoardIDWithCardCounts(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return mapColumns(rows), nil
}

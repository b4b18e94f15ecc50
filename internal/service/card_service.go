package service

import (
	"context"
	"net/http"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/position"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

const (
	maxCardTitleLength       = 500
	maxCardDescriptionLength = 10000
)

type CardService struct {
	cardRepo   repository.CardRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
	access     *AccessGate
}

func NewCardService(cardRepo repository.CardRepositoryInterface, columnRepo repository.ColumnRepositoryInterface, access *AccessGate) *CardService {
	return &CardService{cardRepo: cardRepo, columnRepo: columnRepo, access: access}
}

// CreateCardInput carries validated-at-the-edge request fields. A nil
// Description means the field was not supplied.
type CreateCardInput struct {
	Title       string
	Description *string
}

// UpdateCardInput is a partial update; nil fields are left untouched. An
// empty description string clears the stored value to NULL.
type UpdateCardInput struct {
	Title       *string
	Description *string
}

func validCardTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || len(trimmed) > maxCardTitleLength {
		return "", NewError("Invalid card title", http.StatusBadRequest, CodeInvalidCardTitle)
	}
	return trimmed, nil
}

func validCardDescription(description string) (*string, error) {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) > maxCardDescriptionLength {
		return nil, NewError("Description too long", http.StatusBadRequest, CodeInvalidCardDescription)
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

// ListCards returns the column's cards ordered by position, readable by any
// member of the parent board. No filtering happens here; search semantics
// belong entirely to the caller.
func (s *CardService) ListCards(ctx context.Context, columnID, userID uuid.UUID) ([]CardSummary, error) {
	if err := s.assertCardView(ctx, columnID, userID); err != nil {
		return nil, err
	}
	return s.listCards(ctx, columnID)
}

// listCards skips the membership check; callers that already resolved
// access on the parent board use it directly.
func (s *CardService) listCards(ctx context.Context, columnID uuid.UUID) ([]CardSummary, error) {
	cards, err := s.cardRepo.GetByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	return mapCards(cards), nil
}

func (s *CardService) CreateCard(ctx context.Context, columnID, userID uuid.UUID, input CreateCardInput) (*CardSummary, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, errColumnNotFound()
	}

	if err := s.assertCardEdit(ctx, column.BoardID, userID); err != nil {
		return nil, err
	}

	title, err := validCardTitle(input.Title)
	if err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		description, err = validCardDescription(*input.Description)
		if err != nil {
			return nil, err
		}
	}

	maxPosition, err := s.cardRepo.GetMaxPosition(ctx, columnID)
	if err != nil {
		return nil, err
	}

	card := &model.Card{
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Position:    position.Next(maxPosition),
		CreatedBy:   userID,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, NewError("Failed to create card", http.StatusInternalServerError, CodeCardCreateFailed)
	}

	summary := mapCard(*card)
	return &summary, nil
}

func (s *CardService) GetCardDetail(ctx context.Context, cardID, userID uuid.UUID) (*CardSummary, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errCardNotFound()
	}

	if err := s.assertCardView(ctx, card.ColumnID, userID); err != nil {
		return nil, err
	}

	summary := mapCard(*card)
	return &summary, nil
}

func (s *CardService) UpdateCard(ctx context.Context, cardID, userID uuid.UUID, input UpdateCardInput) (*CardSummary, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errCardNotFound()
	}

	// A no-op update returns the card unchanged without a write.
	if input.Title == nil && input.Description == nil {
		summary := mapCard(*card)
		return &summary, nil
	}

	if err := s.assertCardEditByColumn(ctx, card.ColumnID, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validCardTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		card.Title = title
	}
	if input.Description != nil {
		description, err := validCardDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		card.Description = description
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}

	summary := mapCard(*card)
	return &summary, nil
}

func (s *CardService) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card == nil {
		return errCardNotFound()
	}

	if err := s.assertCardEditByColumn(ctx, card.ColumnID, userID); err != nil {
		return err
	}

	return s.cardRepo.Delete(ctx, cardID)
}

// MoveCard moves a card to index within the target column, which must
// belong to the card's current board. The target sibling set is rebalanced
// and the card's column and position change atomically.
func (s *CardService) MoveCard(ctx context.Context, cardID, userID, targetColumnID uuid.UUID, index int) (*CardSummary, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errCardNotFound()
	}

	sourceColumn, err := s.columnRepo.GetByID(ctx, card.ColumnID)
	if err != nil {
		return nil, err
	}
	if sourceColumn == nil {
		return nil, errColumnNotFound()
	}

	targetColumn, err := s.columnRepo.GetByID(ctx, targetColumnID)
	if err != nil {
		return nil, err
	}
	if targetColumn == nil {
		return nil, errColumnNotFound()
	}

	if sourceColumn.BoardID != targetColumn.BoardID {
		return nil, NewError("Cannot move card across boards", http.StatusBadRequest, CodeCardCrossBoardMove)
	}

	if err := s.assertCardEdit(ctx, targetColumn.BoardID, userID); err != nil {
		return nil, err
	}

	moved, err := s.cardRepo.Move(ctx, cardID, targetColumnID, index)
	if err != nil {
		return nil, err
	}

	summary := mapCard(*moved)
	return &summary, nil
}

// ReorderCards rewrites a column's card order from an explicit ID list,
// which must be an exact permutation of the column's current cards.
func (s *CardService) ReorderCards(ctx context.Context, columnID, userID uuid.UUID, orderedCardIDs []uuid.UUID) ([]CardSummary, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, errColumnNotFound()
	}

	if err := s.assertCardEdit(ctx, column.BoardID, userID); err != nil {
		return nil, err
	}

	existing, err := s.cardRepo.GetByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}

	currentIDs := make([]uuid.UUID, len(existing))
	for i, card := range existing {
		currentIDs[i] = card.ID
	}

	if !position.ValidatePermutation(currentIDs, orderedCardIDs) {
		return nil, NewError("Invalid card order", http.StatusBadRequest, CodeInvalidCardOrder)
	}

	if err := s.cardRepo.Rebalance(ctx, columnID, orderedCardIDs); err != nil {
		return nil, err
	}

	reordered, err := s.cardRepo.GetByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	return mapCards(reordered), nil
}

// DuplicateCards copies all card content between two boards whose columns
// match by position value. Invoked by board duplication.
func (s *CardService) DuplicateCards(ctx context.Context, sourceBoardID, targetBoardID uuid.UUID) error {
	return s.cardRepo.CopyBoardCards(ctx, sourceBoardID, targetBoardID)
}

func (s *CardService) assertCardView(ctx context.Context, columnID, userID uuid.UUID) error {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if column == nil {
		return errColumnNotFound()
	}

	access, err := s.access.GetBoardAccess(ctx, column.BoardID, userID)
	if err != nil {
		return err
	}
	return AssertRole(access.Membership.Role, CanViewBoard, "Forbidden", CodeBoardForbidden)
}

func (s *CardService) assertCardEdit(ctx context.Context, boardID, userID uuid.UUID) error {
	access, err := s.access.GetBoardAccess(ctx, boardID, userID)
	if err != nil {
		return err
	}
	return AssertRole(access.Membership.Role, CanEditColumns, "Insufficient permissions", CodeBoardForbidden)
}

func (s *CardService) assertCardEditByColumn(ctx context.Context, columnID, userID uuid.UUID) error {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if column == nil {
		return errColumnNotFound()
	}
	return s.assertCardEdit(ctx, column.BoardID, userID)
}

package service

import (
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// Entity shapes exchanged with the transport layer.

type BoardSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Role        string    `json:"role"`
	MemberCount int       `json:"memberCount"`
	ColumnCount int       `json:"columnCount"`
}

type ColumnWithMeta struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"boardId"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
	IsCollapsed bool      `json:"isCollapsed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CardCount   int       `json:"cardCount"`
}

type CardSummary struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"columnId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Position    int       `json:"position"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BoardColumnDetail struct {
	ColumnWithMeta
	Cards []CardSummary `json:"cards"`
}

type BoardDetail struct {
	Board   BoardSummary        `json:"board"`
	Columns []BoardColumnDetail `json:"columns"`
}

type BoardMemberInfo struct {
	ID       uuid.UUID `json:"id"`
	BoardID  uuid.UUID `json:"boardId"`
	UserID   uuid.UUID `json:"userId"`
	Role     string    `json:"role"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Image    *string   `json:"image"`
	JoinedAt time.Time `json:"joinedAt"`
}

type UserSummary struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Image         *string   `json:"image"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

func mapBoardSummary(board model.Board, role string, memberCount, columnCount int) BoardSummary {
	return BoardSummary{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		IsArchived:  board.IsArchived,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
		Role:        role,
		MemberCount: memberCount,
		ColumnCount: columnCount,
	}
}

func mapColumn(column model.Column, cardCount int) ColumnWithMeta {
	return ColumnWithMeta{
		ID:          column.ID,
		BoardID:     column.BoardID,
		Name:        column.Name,
		Position:    column.Position,
		IsCollapsed: column.IsCollapsed,
		CreatedAt:   column.CreatedAt,
		UpdatedAt:   column.UpdatedAt,
		CardCount:   cardCount,
	}
}

func mapColumns(rows []repository.ColumnWithCount) []ColumnWithMeta {
	result := make([]ColumnWithMeta, len(rows))
	for i, row := range rows {
		result[i] = mapColumn(row.Column, row.CardCount)
	}
	return result
}

func mapCard(card model.Card) CardSummary {
	return CardSummary{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		CreatedBy:   card.CreatedBy,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

func mapCards(cards []model.Card) []CardSummary {
	result := make([]CardSummary, len(cards))
	for i, card := range cards {
		result[i] = mapCard(card)
	}
	return result
}

func mapMember(member model.BoardMember, user model.User) BoardMemberInfo {
	return BoardMemberInfo{
		ID:       member.ID,
		BoardID:  member.BoardID,
		UserID:   member.UserID,
		Role:     member.Role,
		Name:     user.Name,
		Email:    user.Email,
		Image:    user.Image,
		JoinedAt: member.JoinedAt,
	}
}

func mapUser(user model.User) UserSummary {
	return UserSummary{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Image:         user.Image,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

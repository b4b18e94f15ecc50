package service

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// BoardAccess is a user's resolved relationship to a board.
type BoardAccess struct {
	Board      model.Board
	Membership model.BoardMember
}

// AccessGate resolves memberships and authorizes operations against
// capability predicates. Roles are evaluated fresh on every call so role
// changes take effect immediately.
type AccessGate struct {
	memberRepo repository.BoardMemberRepositoryInterface
}

func NewAccessGate(memberRepo repository.BoardMemberRepositoryInterface) *AccessGate {
	return &AccessGate{memberRepo: memberRepo}
}

// GetBoardAccess returns the board and the caller's membership. A missing
// membership reports BOARD_NOT_FOUND, indistinguishable from a missing
// board, so board existence never leaks to non-members.
func (g *AccessGate) GetBoardAccess(ctx context.Context, boardID, userID uuid.UUID) (*BoardAccess, error) {
	member, err := g.memberRepo.GetWithBoard(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errBoardNotFound()
	}

	return &BoardAccess{
		Board:      member.Board,
		Membership: *member,
	}, nil
}

// AssertRole fails with a 403 carrying code when predicate rejects role.
func AssertRole(role string, predicate func(string) bool, message, code string) error {
	if !predicate(role) {
		return NewError(message, http.StatusForbidden, code)
	}
	return nil
}

// Capability predicates, each a pure function of role.

func CanViewBoard(role string) bool {
	return role == model.RoleOwner || role == model.RoleAdmin ||
		role == model.RoleMember || role == model.RoleViewer
}

func CanManageBoard(role string) bool {
	return role == model.RoleOwner || role == model.RoleAdmin
}

func CanManageMembers(role string) bool {
	return role == model.RoleOwner || role == model.RoleAdmin
}

func CanEditColumns(role string) bool {
	return role == model.RoleOwner || role == model.RoleAdmin || role == model.RoleMember
}

func CanDeleteBoard(role string) bool {
	return role == model.RoleOwner
}

func IsOwner(role string) bool {
	return role == model.RoleOwner
}

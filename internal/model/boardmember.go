package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardMember binds a user to a board with a role. Exactly one row per
// (board, user) pair; the creating user is inserted as owner together with
// the board itself.
type BoardMember struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_board_member"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_board_member"`
	Role     string    `gorm:"not null;check:role IN ('owner', 'admin', 'member', 'viewer')"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Board roles, ordered by privilege descending.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// BoardRoles lists every role accepted by membership mutations.
var BoardRoles = []string{RoleOwner, RoleAdmin, RoleMember, RoleViewer}

func IsValidRole(role string) bool {
	for _, r := range BoardRoles {
		if r == role {
			return true
		}
	}
	return false
}

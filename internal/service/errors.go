package service

import "net/http"

// Error is the single typed failure crossing the service boundary. Handlers
// map it to the HTTP layer; anything else that escapes a service is treated
// as an internal error by the transport.
type Error struct {
	Message string
	Status  int
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(message string, status int, code string) *Error {
	return &Error{Message: message, Status: status, Code: code}
}

// Machine codes, grouped by status.
const (
	CodeBoardNotFound       = "BOARD_NOT_FOUND"
	CodeColumnNotFound      = "COLUMN_NOT_FOUND"
	CodeCardNotFound        = "CARD_NOT_FOUND"
	CodeBoardMemberNotFound = "BOARD_MEMBER_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"

	CodeBoardForbidden            = "BOARD_FORBIDDEN"
	CodeBoardUpdateForbidden      = "BOARD_UPDATE_FORBIDDEN"
	CodeBoardArchiveForbidden     = "BOARD_ARCHIVE_FORBIDDEN"
	CodeBoardDeleteForbidden      = "BOARD_DELETE_FORBIDDEN"
	CodeBoardDuplicateForbidden   = "BOARD_DUPLICATE_FORBIDDEN"
	CodeBoardMemberForbidden      = "BOARD_MEMBER_FORBIDDEN"
	CodeBoardOwnerModifyForbidden = "BOARD_OWNER_MODIFY_FORBIDDEN"
	CodeBoardOwnerRemoveForbidden = "BOARD_OWNER_REMOVE_FORBIDDEN"
	CodeColumnForbidden           = "COLUMN_FORBIDDEN"

	CodeInvalidCardTitle       = "INVALID_CARD_TITLE"
	CodeInvalidCardDescription = "INVALID_CARD_DESCRIPTION"
	CodeInvalidColumnName      = "INVALID_COLUMN_NAME"
	CodeInvalidColumnOrder     = "INVALID_COLUMN_ORDER"
	CodeInvalidCardOrder       = "INVALID_CARD_ORDER"
	CodeInvalidRole            = "INVALID_ROLE"
	CodeBoardMemberSelf        = "BOARD_MEMBER_SELF"
	CodeCardCrossBoardMove     = "CARD_CROSS_BOARD_MOVE"

	CodeBoardMemberExists = "BOARD_MEMBER_EXISTS"

	CodeColumnCreateDisabled = "COLUMN_CREATE_DISABLED"
	CodeColumnDeleteDisabled = "COLUMN_DELETE_DISABLED"

	CodeBoardCreateFailed    = "BOARD_CREATE_FAILED"
	CodeBoardDuplicateFailed = "BOARD_DUPLICATE_FAILED"
	CodeCardCreateFailed     = "CARD_CREATE_FAILED"
)

func errBoardNotFound() *Error {
	return NewError("Board not found", http.StatusNotFound, CodeBoardNotFound)
}

func errColumnNotFound() *Error {
	return NewError("Column not found", http.StatusNotFound, CodeColumnNotFound)
}

func errCardNotFound() *Error {
	return NewError("Card not found", http.StatusNotFound, CodeCardNotFound)
}

func errMemberNotFound() *Error {
	return NewError("Member not found", http.StatusNotFound, CodeBoardMemberNotFound)
}

func errUserNotFound() *Error {
	return NewError("User not found", http.StatusNotFound, CodeUserNotFound)
}

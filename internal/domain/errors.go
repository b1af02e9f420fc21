package domain

import "fmt"

// ErrorCode is a machine-readable rejection reason.
type ErrorCode string

const (
	CodeEmptySource          ErrorCode = "EMPTY_SOURCE"
	CodeNoQualifyingCard     ErrorCode = "NO_QUALIFYING_CARD"
	CodeWrongSuit            ErrorCode = "WRONG_SUIT"
	CodeWrongRankOrColor     ErrorCode = "WRONG_RANK_OR_COLOR"
	CodeUnsupportedPilePair  ErrorCode = "UNSUPPORTED_PILE_PAIR"
	CodeFoundationFull       ErrorCode = "FOUNDATION_FULL"
	CodeInvalidPileReference ErrorCode = "INVALID_PILE_REFERENCE"
)

// MoveError reports why a move was rejected. A rejected move never changes
// the game.
type MoveError struct {
	Code    ErrorCode
	Message string
}

func (e *MoveError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is matches any MoveError carrying the same code, so callers can use
// errors.Is(err, ErrWrongSuit).
func (e *MoveError) Is(target error) bool {
	t, ok := target.(*MoveError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrEmptySource          = &MoveError{Code: CodeEmptySource}
	ErrNoQualifyingCard     = &MoveError{Code: CodeNoQualifyingCard}
	ErrWrongSuit            = &MoveError{Code: CodeWrongSuit}
	ErrWrongRankOrColor     = &MoveError{Code: CodeWrongRankOrColor}
	ErrUnsupportedPilePair  = &MoveError{Code: CodeUnsupportedPilePair}
	ErrFoundationFull       = &MoveError{Code: CodeFoundationFull}
	ErrInvalidPileReference = &MoveError{Code: CodeInvalidPileReference}
)

func moveErr(code ErrorCode, format string, args ...any) *MoveError {
	return &MoveError{Code: code, Message: fmt.Sprintf(format, args...)}
}

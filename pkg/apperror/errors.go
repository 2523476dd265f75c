package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// ---- Input (INPUT) ----

func ErrInvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func ErrPayloadTooLarge() *AppError {
	return New(CodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Mines (MINES) ----

func ErrInvalidBet() *AppError {
	return New(CodeInvalidBet, "Bet must be a positive amount with at most 2 decimal places, up to 1000000", http.StatusBadRequest)
}

func ErrInvalidMineCount(min, max int) *AppError {
	return New(CodeInvalidMineCount, fmt.Sprintf("Mine count must be between %d and %d", min, max), http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance", http.StatusPaymentRequired)
}

func ErrNoActiveGame() *AppError {
	return New(CodeNoActiveGame, "No active game", http.StatusNotFound)
}

func ErrTileOutOfRange(gridSize int) *AppError {
	return New(CodeTileOutOfRange, fmt.Sprintf("Tile must be between 0 and %d", gridSize-1), http.StatusBadRequest)
}

func ErrTileAlreadyRevealed() *AppError {
	return New(CodeTileAlreadyRevealed, "Tile already revealed", http.StatusConflict)
}

func ErrGameInProgress() *AppError {
	return New(CodeGameInProgress, "A game is already in progress", http.StatusConflict)
}

func ErrConflict() *AppError {
	return New(CodeConflict, "Another request for this account is in progress", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid Discord ID or login code", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// ErrStoreUnavailable reports that a backing store could not complete the operation.
func ErrStoreUnavailable(err error) *AppError {
	return Wrap(CodeStoreUnavailable, "Storage temporarily unavailable", http.StatusServiceUnavailable, err)
}

// Validation returns an INPUT_001 validation error.
func Validation(message string) *AppError {
	return ErrInvalidInput(message)
}

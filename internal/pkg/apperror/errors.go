package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeBudgetExceeded     ErrorCode = "BUDGET_EXCEEDED"
	ErrCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	ErrCodeGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeValidation, ErrCodeBudgetExceeded, ErrCodeInvalidTransition:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeGatewayUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки, либо INTERNAL_ERROR для неизвестных ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsBudgetExceeded(err error) bool {
	return CodeOf(err) == ErrCodeBudgetExceeded
}

func IsInvalidTransition(err error) bool {
	return CodeOf(err) == ErrCodeInvalidTransition
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

var (
	ErrUserNotFound        = New(ErrCodeNotFound, "пользователь не найден")
	ErrProNotFound         = New(ErrCodeNotFound, "мастер не найден")
	ErrProfileNotFound     = New(ErrCodeNotFound, "профиль не найден")
	ErrJobNotFound         = New(ErrCodeNotFound, "заявка не найдена")
	ErrQuoteNotFound       = New(ErrCodeNotFound, "отклик не найден")
	ErrTransactionNotFound = New(ErrCodeNotFound, "транзакция не найдена")
	ErrCategoryNotFound    = New(ErrCodeNotFound, "категория не найдена")
	ErrBudgetExceeded      = New(ErrCodeBudgetExceeded, "недельный бюджет исчерпан")
	ErrEmailTaken          = New(ErrCodeConflict, "email уже зарегистрирован")
	ErrSlugTaken           = New(ErrCodeConflict, "категория с таким slug уже существует")
	ErrInvalidCredentials  = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden           = New(ErrCodeForbidden, "недостаточно прав")
)

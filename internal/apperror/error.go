package apperror

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL的"Duplicate entry"错误号
const mysqlDuplicateEntry = 1062

// Error 是所有业务错误的统一形状：状态码、对外的提示、细节列表，cause只用于日志
type Error struct {
	StatusCode int
	Message    string
	Errors     []string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Wrap 挂上底层原因，返回同一个错误方便链式调用
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

func New(statusCode int, message string, details ...string) *Error {
	if details == nil {
		details = []string{}
	}
	return &Error{StatusCode: statusCode, Message: message, Errors: details}
}

func BadRequest(message string, details ...string) *Error {
	return New(http.StatusBadRequest, message, details...)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Upstream 媒体服务等外部依赖失败
func Upstream(message string, cause error) *Error {
	return New(http.StatusInternalServerError, message).Wrap(cause)
}

func Internal(cause error) *Error {
	return New(http.StatusInternalServerError, "Internal Server Error").Wrap(cause)
}

// From 把任意错误归一成*Error：1、已经是*Error直接返回 2、记录不存在->404 3、唯一键冲突->409 4、其余一律500
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Resource not found").Wrap(err)
	}
	if IsDuplicateKey(err) {
		return Conflict("Resource already exists").Wrap(err)
	}
	return Internal(err)
}

// IsDuplicateKey 用errors.As检查错误的"根"是不是MySQL的重复键错误
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

package service

import (
	"errors"

	"Vidtube/internal/apperror"

	"gorm.io/gorm"
)

// notFoundOr 记录不存在翻译成带具体提示的404，其他错误原样往上抛
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return err
}

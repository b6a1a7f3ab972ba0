package repository

import (
	"errors"
	"fmt"
	"institute_backend/internal/util"

	"gorm.io/gorm"
)

// wrapDBError 统一转换 gorm 错误，entity 用于 not found 的提示
func wrapDBError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", entity, util.ErrNotFound)
	default:
		return fmt.Errorf("%w: %v", util.ErrStoreFailure, err)
	}
}

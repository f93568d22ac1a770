package repository

import (
	"errors"

	"github.com/goldcrest/banking/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so database concerns
// stay inside this layer.
func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	default:
		return err
	}
}

package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oficina/backend/internal/domain/shared"
)

// saveVersioned inserts an aggregate that was never stored, or overwrites its
// row only while the stored version still matches the one the aggregate was
// loaded with. A stale copy gets shared.ErrConcurrentModification.
// Callers mark the aggregate persisted once the surrounding work commits.
func saveVersioned(tx *gorm.DB, aggregate shared.AggregateRoot, model any) error {
	expected := aggregate.PersistedVersion()
	if expected == 0 {
		return tx.Omit(clause.Associations).Create(model).Error
	}

	result := tx.Model(model).
		Where("version = ?", expected).
		Select("*").
		Omit(clause.Associations).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	return nil
}

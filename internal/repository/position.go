package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate locks the rows of table selected by the statement until the
// surrounding transaction ends.
func forUpdate(table string) clause.Locking {
	return clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: table}}
}

// nextPosition returns the ordinal for a new child appended under parentID: the
// number of siblings it already has. It must run inside the transaction that
// locked the parent row, otherwise two creations can read the same count.
func nextPosition(tx *gorm.DB, child any, parentColumn string, parentID uuid.UUID) (int, error) {
	var count int64
	if err := tx.Model(child).Where(parentColumn+" = ?", parentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

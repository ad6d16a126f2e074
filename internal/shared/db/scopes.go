// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForEstablishment is a GORM scope restricting rows to one tenant.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.ForEstablishment(estID)).Where("name = ?", name).Count(&count)
func ForEstablishment(establishmentID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("establishment_id = ?", establishmentID)
	}
}

// ForEstablishmentWithAlias is ForEstablishment for joined queries.
func ForEstablishmentWithAlias(alias string, establishmentID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".establishment_id = ?", establishmentID)
	}
}

// LockForUpdate adds SELECT ... FOR UPDATE. Drivers without row-level
// locking (SQLite) drop the clause.
func LockForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Paginate applies offset/limit when both page and pageSize are positive.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

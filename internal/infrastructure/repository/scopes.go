package repository

import (
	"strings"

	"github.com/sangkips/pizzeria-pos/pkg/pagination"
	"gorm.io/gorm"
)

// ForDate returns a GORM scope that keeps rows of one business date.
// An empty date leaves the query unfiltered.
func ForDate(date string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if date == "" {
			return db
		}
		return db.Where("date = ?", date)
	}
}

// ForWaiter returns a GORM scope that keeps one waiter's rows, ignoring case.
func ForWaiter(waiter string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if waiter == "" {
			return db
		}
		return db.Where("LOWER(waiter) = ?", strings.ToLower(waiter))
	}
}

// Paginate returns a GORM scope applying offset and limit.
func Paginate(p *pagination.Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		p.Normalize()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// NewestFirst orders ledger rows by business date and time, latest first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("time DESC").Order("created_at DESC")
}

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderedItems keeps line items in the order they were entered
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// orderedPayments keeps payments in the order they were recorded
func orderedPayments(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// withLines preloads a receipt's items and payments
func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", orderedItems).
		Preload("Payments", orderedPayments)
}

// newestFirst orders receipts by date, ties broken by insertion order
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC, id ASC")
}

// forUpdate takes a row lock that is held until the transaction ends
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

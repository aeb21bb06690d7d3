package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
)

// ReceiptRecord is the persisted shape of a receipt. Balance and Status are
// stored for listing queries but are recomputed from items and payments on read.
type ReceiptRecord struct {
	ID              int64               `gorm:"primaryKey;autoIncrement"`
	Number          string              `gorm:"size:100;not null;uniqueIndex"`
	Date            time.Time           `gorm:"not null;index"`
	CustomerName    string              `gorm:"size:255;not null"`
	CustomerContact string              `gorm:"size:255"`
	Total           int64               `gorm:"not null"`
	Balance         int64               `gorm:"not null"`
	Status          enum.ReceiptStatus  `gorm:"type:varchar(20);not null;index"`
	Items           []ReceiptItemRecord `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	Payments        []PaymentRecord     `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ReceiptRecord) TableName() string {
	return "receipts"
}

// ReceiptItemRecord is one line of a receipt with its service snapshot flattened
type ReceiptItemRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ReceiptID   int64  `gorm:"not null;index"`
	Position    int    `gorm:"not null"`
	ServiceName string `gorm:"size:255;not null"`
	UnitPrice   int64  `gorm:"not null"`
	Quantity    int64  `gorm:"not null"`
	Total       int64  `gorm:"not null"`
}

func (ReceiptItemRecord) TableName() string {
	return "receipt_items"
}

// PaymentRecord rows are only ever inserted
type PaymentRecord struct {
	ID        int64              `gorm:"primaryKey;autoIncrement"`
	ReceiptID int64              `gorm:"not null;index"`
	Method    enum.PaymentMethod `gorm:"type:varchar(150);not null"`
	Date      time.Time          `gorm:"not null"`
	Notes     string             `gorm:"type:text"`
	Amount    int64              `gorm:"not null"`
	CreatedAt time.Time
}

func (PaymentRecord) TableName() string {
	return "payments"
}

type ServiceItemRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	Price     int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (ServiceItemRecord) TableName() string {
	return "service_items"
}

type CustomerRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;index"`
	Contact   string `gorm:"size:255"`
	CreatedAt time.Time
}

func (CustomerRecord) TableName() string {
	return "customers"
}

// BusinessProfileRecord is a single row keyed by businessProfileID
type BusinessProfileRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255"`
	Address   string `gorm:"type:text"`
	Phone     string `gorm:"size:50"`
	UpdatedAt time.Time
}

func (BusinessProfileRecord) TableName() string {
	return "business_profiles"
}

type UserProfileRecord struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255"`
	UpdatedAt time.Time
}

func (UserProfileRecord) TableName() string {
	return "user_profiles"
}

type UserRoleRecord struct {
	UserID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Role      enum.UserRole `gorm:"type:varchar(20);not null"`
	UpdatedAt time.Time
}

func (UserRoleRecord) TableName() string {
	return "user_roles"
}

// Models lists every table this package reads and writes, for auto-migration
func Models() []interface{} {
	return []interface{}{
		&ReceiptRecord{},
		&ReceiptItemRecord{},
		&PaymentRecord{},
		&ServiceItemRecord{},
		&CustomerRecord{},
		&BusinessProfileRecord{},
		&UserProfileRecord{},
		&UserRoleRecord{},
	}
}

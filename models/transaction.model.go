package models

import (
	"time"
)

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusSuccess    TransactionStatus = "success"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusProcessing,
		TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// Transaction tracks payments independently of orders. ProductID is nil
// for transactions spanning several products.
type Transaction struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            uint              `gorm:"index;not null" json:"user_id"`
	ProductID         *uint             `gorm:"index" json:"product_id"`
	Status            TransactionStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	TransactionNumber string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"transaction_number"`
	Notes             string            `gorm:"type:text" json:"notes"`
	PaidAt            *time.Time        `json:"paid_at"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type CreateTransactionInput struct {
	UserID    uint   `json:"user_id" validate:"required"`
	ProductID *uint  `json:"product_id"`
	Notes     string `json:"notes"`
}

type UpdateTransactionStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type UpdateTransactionInput struct {
	ProductID *uint   `json:"product_id"`
	Notes     *string `json:"notes"`
}

type TransactionStats struct {
	TotalTransactions int64 `json:"total_transactions"`
	PendingCount      int64 `json:"pending_count"`
	ProcessingCount   int64 `json:"processing_count"`
	SuccessCount      int64 `json:"success_count"`
	FailedCount       int64 `json:"failed_count"`
	CancelledCount    int64 `json:"cancelled_count"`
}

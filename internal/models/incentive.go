package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type IncentiveKind string

const (
	IncentiveBonus     IncentiveKind = "bonus"
	IncentiveDeduction IncentiveKind = "deduction"
)

func (k IncentiveKind) Valid() bool {
	return k == IncentiveBonus || k == IncentiveDeduction
}

// Incentive is an append-only bonus or deduction record. Rows are never
// updated in place, only created and deleted.
type Incentive struct {
	ID        uint64          `gorm:"primarykey" json:"id"`
	UserID    uint64          `gorm:"not null;index" json:"user_id"`
	Kind      IncentiveKind   `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason    string          `gorm:"type:text;not null" json:"reason"`
	CreatedBy uint64          `gorm:"not null" json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`

	// Relations
	User    User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

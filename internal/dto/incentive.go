package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffdesk/incentive-api/internal/models"
)

// IncentiveDTO represents a ledger entry in API responses, annotated with the
// target and creator display names via join rather than stored redundantly.
type IncentiveDTO struct {
	ID        uint64               `json:"id"`
	UserID    uint64               `json:"user_id"`
	Kind      models.IncentiveKind `json:"type"`
	Amount    decimal.Decimal      `json:"amount"`
	Reason    string               `json:"reason"`
	CreatedBy uint64               `json:"created_by"`
	CreatedAt time.Time            `json:"created_at"`

	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
}

// ToIncentiveDTO converts an Incentive model to IncentiveDTO
func ToIncentiveDTO(incentive models.Incentive) IncentiveDTO {
	dto := IncentiveDTO{
		ID:        incentive.ID,
		UserID:    incentive.UserID,
		Kind:      incentive.Kind,
		Amount:    incentive.Amount,
		Reason:    incentive.Reason,
		CreatedBy: incentive.CreatedBy,
		CreatedAt: incentive.CreatedAt,
	}

	if incentive.User.ID != 0 {
		dto.UserName = incentive.User.Name
		dto.UserEmail = incentive.User.Email
	}
	if incentive.Creator.ID != 0 {
		dto.CreatedByName = incentive.Creator.Name
	}

	return dto
}

// ToIncentiveDTOs converts a slice of incentives
func ToIncentiveDTOs(incentives []models.Incentive) []IncentiveDTO {
	dtos := make([]IncentiveDTO, len(incentives))
	for i, inc := range incentives {
		dtos[i] = ToIncentiveDTO(inc)
	}
	return dtos
}

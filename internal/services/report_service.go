package services

import (
	"fmt"

	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
)

// TaskReport summarizes tasks by status.
type TaskReport struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
}

// IncentiveReport summarizes the ledger per kind.
type IncentiveReport struct {
	BonusCount     int64  `json:"bonusCount"`
	BonusTotal     string `json:"bonusTotal"`
	DeductionCount int64  `json:"deductionCount"`
	DeductionTotal string `json:"deductionTotal"`
}

// Report is the admin overview combining both aggregates.
type Report struct {
	Tasks      TaskReport      `json:"tasks"`
	Incentives IncentiveReport `json:"incentives"`
}

// ReportService builds the admin overview report.
type ReportService struct {
	taskRepo      repository.TaskRepository
	incentiveRepo repository.IncentiveRepository
}

// NewReportService creates a new ReportService.
func NewReportService(taskRepo repository.TaskRepository, incentiveRepo repository.IncentiveRepository) *ReportService {
	return &ReportService{
		taskRepo:      taskRepo,
		incentiveRepo: incentiveRepo,
	}
}

// GetReport returns task and incentive aggregates, admin only.
func (s *ReportService) GetReport(requester *models.User) (*Report, error) {
	if !authz.CanManageIncentives(requester.UserType) {
		return nil, forbidden("admin access required")
	}

	statusCounts, err := s.taskRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	report := &Report{
		Tasks: TaskReport{
			Completed:  statusCounts[models.TaskStatusCompleted],
			Pending:    statusCounts[models.TaskStatusPending],
			InProgress: statusCounts[models.TaskStatusInProgress],
		},
		Incentives: IncentiveReport{
			BonusTotal:     "0",
			DeductionTotal: "0",
		},
	}
	for _, count := range statusCounts {
		report.Tasks.Total += count
	}

	kindStats, err := s.incentiveRepo.SumByKind()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate incentives: %w", err)
	}
	for _, st := range kindStats {
		switch st.Kind {
		case models.IncentiveBonus:
			report.Incentives.BonusCount = st.Count
			report.Incentives.BonusTotal = st.Total
		case models.IncentiveDeduction:
			report.Incentives.DeductionCount = st.Count
			report.Incentives.DeductionTotal = st.Total
		}
	}

	return report, nil
}

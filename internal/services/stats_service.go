package services

import (
	"time"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/stats"
)

const (
	defaultMonthsBack = 6
	maxMonthsBack     = 24
)

// statsService answers aggregation queries by loading a workspace's full
// transaction list (through the transaction service's cache) and running
// the pure aggregation engine over it.
type statsService struct {
	transactionService TransactionServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(transactionService TransactionServicer) StatsServicer {
	return &statsService{transactionService: transactionService}
}

// Summary returns net balance and per-type totals for the workspace.
func (s *statsService) Summary(userID, workspaceID uint) (*WorkspaceSummary, error) {
	txns, err := s.transactionService.ListWorkspaceTransactions(userID, workspaceID, ListFilter{})
	if err != nil {
		return nil, err
	}

	return &WorkspaceSummary{
		Balance:      stats.TotalBalance(txns),
		TotalIncome:  stats.TotalByType(txns, models.TransactionTypeIncome),
		TotalExpense: stats.TotalByType(txns, models.TransactionTypeExpense),
		Transactions: len(txns),
	}, nil
}

// Categories returns per-category totals for the given type, largest
// first.
func (s *statsService) Categories(userID, workspaceID uint, txType models.TransactionType) ([]stats.CategoryTotal, error) {
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	txns, err := s.transactionService.ListWorkspaceTransactions(userID, workspaceID, ListFilter{})
	if err != nil {
		return nil, err
	}
	return stats.GroupByCategory(txns, txType), nil
}

// Monthly returns income/expense totals for the trailing monthsBack
// calendar months including the current one, oldest first. monthsBack
// defaults to 6 and is capped at 24.
func (s *statsService) Monthly(userID, workspaceID uint, monthsBack int) ([]stats.MonthBucket, error) {
	if monthsBack <= 0 {
		monthsBack = defaultMonthsBack
	}
	if monthsBack > maxMonthsBack {
		monthsBack = maxMonthsBack
	}

	txns, err := s.transactionService.ListWorkspaceTransactions(userID, workspaceID, ListFilter{})
	if err != nil {
		return nil, err
	}
	return stats.MonthlyTotals(txns, monthsBack, time.Now()), nil
}

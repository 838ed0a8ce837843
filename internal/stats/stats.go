// Package stats is the transaction aggregation engine: pure functions over
// an in-memory transaction list, answering the filtering and summary
// queries the statistics views need without extra database round-trips.
// Amounts are int64 cents throughout, so sums are exact.
package stats

import (
	"sort"
	"time"

	"ledgerspace/internal/models"
)

// YearMonthLayout is the calendar-month format accepted by Filter
// and emitted by MonthlyTotals.
const YearMonthLayout = "2006-01"

// CategoryTotal is the summed amount for a single category label.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// MonthBucket holds summed income and expense for one calendar month.
type MonthBucket struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// Filter returns the transactions matching the given type (if non-nil) and
// calendar month in YYYY-MM form (if non-empty). The relative order of the
// input is preserved and the input slice is never modified.
func Filter(txns []models.Transaction, txType *models.TransactionType, yearMonth string) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(txns))
	for _, tx := range txns {
		if txType != nil && tx.Type != *txType {
			continue
		}
		if yearMonth != "" && tx.Date.Format(YearMonthLayout) != yearMonth {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

// TotalBalance returns net balance: summed income minus summed expense
// across the full set.
func TotalBalance(txns []models.Transaction) int64 {
	var balance int64
	for _, tx := range txns {
		switch tx.Type {
		case models.TransactionTypeIncome:
			balance += tx.Amount
		case models.TransactionTypeExpense:
			balance -= tx.Amount
		}
	}
	return balance
}

// TotalByType returns the summed amount of all transactions of the given type.
func TotalByType(txns []models.Transaction, txType models.TransactionType) int64 {
	var total int64
	for _, tx := range txns {
		if tx.Type == txType {
			total += tx.Amount
		}
	}
	return total
}

// GroupByCategory partitions transactions of the given type by category
// label, summing amounts per category. Results are sorted by total
// descending; equal totals order by category name ascending.
func GroupByCategory(txns []models.Transaction, txType models.TransactionType) []CategoryTotal {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, tx := range txns {
		if tx.Type != txType {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount
	}

	grouped := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		grouped = append(grouped, CategoryTotal{Category: category, Total: totals[category]})
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		if grouped[i].Total != grouped[j].Total {
			return grouped[i].Total > grouped[j].Total
		}
		return grouped[i].Category < grouped[j].Category
	})
	return grouped
}

// MonthlyTotals buckets transactions into the trailing monthsBack calendar
// months ending at ref's month (inclusive). Months with no transactions
// appear with zero totals; buckets are ordered oldest first.
func MonthlyTotals(txns []models.Transaction, monthsBack int, ref time.Time) []MonthBucket {
	if monthsBack <= 0 {
		return []MonthBucket{}
	}

	buckets := make([]MonthBucket, monthsBack)
	index := make(map[string]int, monthsBack)
	for i := 0; i < monthsBack; i++ {
		month := time.Date(ref.Year(), ref.Month()-time.Month(monthsBack-1-i), 1, 0, 0, 0, 0, ref.Location())
		key := month.Format(YearMonthLayout)
		buckets[i] = MonthBucket{Month: key}
		index[key] = i
	}

	for _, tx := range txns {
		i, ok := index[tx.Date.Format(YearMonthLayout)]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			buckets[i].Income += tx.Amount
		case models.TransactionTypeExpense:
			buckets[i].Expense += tx.Amount
		}
	}
	return buckets
}

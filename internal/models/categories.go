package models

// Categories on transactions are free-form strings; these are the
// suggestion lists offered by the entry form.
var (
	DefaultIncomeCategories = []string{"Salary", "Freelance", "Investments", "Gift", "Other"}

	DefaultExpenseCategories = []string{"Food", "Transport", "Entertainment", "Housing", "Utilities", "Healthcare", "Shopping", "Other"}
)

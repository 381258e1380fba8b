package analysis

import "fjacquet/finflow/internal/currencyutils"

// SavingsRate returns (income-monthlyExpense)/income as a percentage rounded
// to one decimal. A non-positive income yields 0.
func SavingsRate(income, monthlyExpense float64) float64 {
	if income <= 0 {
		return 0
	}
	return currencyutils.Round1(currencyutils.Percent(income-monthlyExpense, income))
}

// EMIRatio returns the share of income spent on loan installments, in percent.
func EMIRatio(emi, income float64) float64 {
	return currencyutils.Round1(currencyutils.Percent(emi, income))
}

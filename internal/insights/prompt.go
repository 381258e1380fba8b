package insights

import (
	"fmt"
	"strings"

	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/models"
)

// PromptContext is the normalized view of a user's finances sent to the advisor.
type PromptContext struct {
	Profile        models.Profile
	Months         float64
	MonthlyExpense float64
	Surplus        float64
	SavingsRate    float64
	TopExpenses    []models.Transaction
}

// BuildPrompt renders the advice request.
func BuildPrompt(pc PromptContext) string {
	p := pc.Profile.WithDefaults()
	months := pc.Months
	if months <= 0 {
		months = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a witty personal finance advisor for a %s level student or professional working as a %s.\n\n",
		p.EducationLevel, p.JobTitle)

	fmt.Fprintf(&b, "Monthly financial context (normalized from a %s month period):\n",
		strconvFloat(months, 1))
	fmt.Fprintf(&b, "- Income: %s\n", currencyutils.FormatRupees(p.MonthlyIncome))
	fmt.Fprintf(&b, "- Avg monthly expense: %s\n", currencyutils.FormatRupees(pc.MonthlyExpense))
	fmt.Fprintf(&b, "- Savings rate: %s%%\n", strconvFloat(pc.SavingsRate, 1))
	fmt.Fprintf(&b, "- Debt: EMI of %s at %s%% interest\n\n",
		currencyutils.FormatRupees(p.MonthlyEMI), strconvFloat(p.InterestRate, -1))

	b.WriteString("Top spends (per month):\n")
	if len(pc.TopExpenses) == 0 {
		b.WriteString("- none recorded\n")
	}
	for _, tx := range pc.TopExpenses {
		perMonth := tx.Magnitude().InexactFloat64() / months
		fmt.Fprintf(&b, "- %s: %s/mo\n", tx.Description, currencyutils.FormatRupees(perMonth))
	}

	b.WriteString("\nRules:\n")
	b.WriteString("1. Never mention personal names of people.\n")
	b.WriteString("2. Give exactly 3 short bulleted insights, each starting with an emoji.\n")
	fmt.Fprintf(&b, "3. Reference their role as a %s.\n", p.JobTitle)
	fmt.Fprintf(&b, "4. Focus on the %s monthly %s.\n",
		currencyutils.FormatRupees(absFloat(pc.Surplus)), surplusWord(pc.Surplus))
	return b.String()
}

func surplusWord(surplus float64) string {
	if surplus < 0 {
		return "deficit"
	}
	return "surplus"
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

package insights

import (
	"strings"
)

// Bucket groups interchangeable fallback templates.
type Bucket string

const (
	BucketHighSavings Bucket = "high_savings"
	BucketLowSavings  Bucket = "low_savings"
	BucketDebtHeavy   Bucket = "debt_heavy"
)

// Templates are the deterministic fallback phrasings. Placeholders in braces
// are filled by Render.
var Templates = map[Bucket][]string{
	BucketHighSavings: {
		"💎 Strong position: your {rate}% savings rate leaves ₹{surplus} spare each month. Put it to work in an index fund.",
		"🚀 Wealth move: at {rate}% you are ahead of the curve. Automate an investment of your ₹{surplus} surplus.",
		"🦁 Idle capital: a {rate}% savings rate means ₹{surplus} sits unused every month. Start an SIP and let it compound.",
	},
	BucketLowSavings: {
		"⚠️ Spending check: you are saving only {rate}%. ₹{top_amt} a month went to {top_merchant}. Need or want?",
		"📉 Efficiency gap: you are at {rate}%. Cutting {top_merchant} by 20% would free ₹{potential} a month.",
		"🧨 Thin buffer: at {rate}% there is little margin. ₹{top_amt} at {top_merchant} is eating into your future savings.",
	},
	BucketDebtHeavy: {
		"💳 Interest drag: your loan at {loan_rate}% is holding you back. Refinancing could save thousands.",
		"🛑 Debt load: EMIs take {emi_ratio}% of your income. Hold off on any new credit.",
	},
}

// Render substitutes {name} placeholders from values. Unknown placeholders
// are left as-is.
func Render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

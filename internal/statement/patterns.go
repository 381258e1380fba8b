package statement

const monthAlternation = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

// The statement layout's field patterns. Month names are case-sensitive as
// printed; lead-ins and footer labels are not.
var (
	DateAnchorMatcher = NewMatcher(
		"date-anchor",
		`^[ \t]*(?:\d{1,2}[ \t]+(?:`+monthAlternation+`)\b|(?:`+monthAlternation+`)[ \t]+\d{1,2}\b)`,
		"none; matches a line that opens a block with '16 Dec' or 'Dec 16'",
	)

	LeadInMatcher = NewMatcher(
		"merchant-lead-in",
		`(?i)(?:Paid to|Received from|Money sent to|Payment to|Automatic payment for)\s+`,
		"none; the merchant starts where the match ends",
	)

	MerchantStopMatcher = NewMatcher(
		"merchant-stop",
		`(?i)\s{2,}|tag:|upi id:|#|\n`,
		"none; the merchant ends where the match starts, or at end of block",
	)

	CategoryMatcher = NewMatcher(
		"category-tag",
		`#[ \t]*([A-Za-z]+(?:[ \t]+[A-Za-z]+)*)`,
		"1: tag words separated by spaces or tabs, never a newline",
	)

	AmountMatcher = NewMatcher(
		"amount",
		`([+-]?)\s*(?:Rs\.?|₹)\s*(\d[\d,]*(?:\.\d+)?)`,
		"1: optional sign; 2: magnitude with thousands separators",
	)

	DateMatcher = NewMatcher(
		"date",
		`\b(\d{1,2})[ \t]+(`+monthAlternation+`)\b|\b(`+monthAlternation+`)[ \t]+(\d{1,2})\b`,
		"1,2: day and month of 'Day Mon'; 3,4: month and day of 'Mon Day'",
	)
)

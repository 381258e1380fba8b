package statement

import (
	"testing"
	"time"

	"fjacquet/finflow/internal/categorizer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "double space stop", text: "16 Dec  Paid to Raj Kumar  Rs.250.00 #Food\nUPI ID: raj@upi", want: "Raj Kumar", wantOK: true},
		{name: "newline stop", text: "Money sent to Amit\nTag: #Transfers", want: "Amit", wantOK: true},
		{name: "case-insensitive lead-in and tag stop", text: "paid TO swiggy Tag: food", want: "swiggy", wantOK: true},
		{name: "upi id stop", text: "Automatic payment for Netflix UPI ID: net@upi", want: "Netflix", wantOK: true},
		{name: "hash stop", text: "Payment to Airtel#Bills", want: "Airtel", wantOK: true},
		{name: "end of block", text: "Received from Mom", want: "Mom", wantOK: true},
		{name: "lead-in then line break", text: "Paid to\nRaj Kumar\nUPI ID: x", want: "Raj Kumar", wantOK: true},
		{name: "first lead-in wins", text: "Received from Alice\nPaid to Bob", want: "Alice", wantOK: true},
		{name: "no lead-in", text: "16 Dec Rs.250 #Food", wantOK: false},
		{name: "empty capture", text: "Payment to  ", wantOK: false},
		{name: "capture is only a tag", text: "Paid to #Food", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractMerchant(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCategory(t *testing.T) {
	tags := categorizer.DefaultTagMap()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "simple", text: "Rs.250.00 #Food", want: "Food"},
		{name: "space after hash", text: "# Bill Payments", want: "Bill Payments"},
		{name: "wide spacing", text: "#Bill   Payments", want: "Bill Payments"},
		{name: "lower case", text: "#bill payments", want: "Bill Payments"},
		{name: "mapped", text: "#Medical", want: "Healthcare"},
		{name: "mapped plural", text: "Tag: # Transfers", want: "Money Transfer"},
		{name: "identity mapping", text: "#Money Received", want: "Money Received"},
		{name: "stops at newline", text: "#Food\nUPI ID: raj@upi", want: "Food"},
		{name: "stops at digits", text: "#Fuel 42", want: "Fuel"},
		{name: "first tag wins", text: "#Food #Travel", want: "Food"},
		{name: "no tag", text: "Paid to Raj Rs.250", want: "Miscellaneous"},
		{name: "hash without letters", text: "Order #123", want: "Miscellaneous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCategory(tt.text, tags))
		})
	}
}

func TestExtractCategory_WhitespaceIdempotent(t *testing.T) {
	tags := categorizer.DefaultTagMap()
	assert.Equal(t, ExtractCategory("#Bill   Payments", tags), ExtractCategory("# Bill Payments", tags))
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "debit", text: "- Rs.250.00", want: "-250.00", wantOK: true},
		{name: "debit no space", text: "-Rs.250.00", want: "-250", wantOK: true},
		{name: "unsigned", text: "Rs.250.00", want: "250", wantOK: true},
		{name: "credit with separators", text: "+ Rs. 50,000", want: "50000", wantOK: true},
		{name: "rupee glyph", text: "₹1,234.5", want: "1234.5", wantOK: true},
		{name: "rupee glyph debit", text: "-₹99", want: "-99", wantOK: true},
		{name: "rs without period", text: "Rs 10", want: "10", wantOK: true},
		{name: "indian grouping", text: "Rs.1,23,456.75", want: "123456.75", wantOK: true},
		{name: "in a block", text: "16 Dec  Paid to Raj Kumar  - Rs.250.00 #Food", want: "-250", wantOK: true},
		{name: "first amount wins", text: "Rs.10 then - Rs.20", want: "10", wantOK: true},
		{name: "no currency marker", text: "Amount 250", wantOK: false},
		{name: "marker without digits", text: "Rs.", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAmount(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   DayMonth
		wantOK bool
	}{
		{name: "day month", text: "16 Dec  Paid to Raj", want: DayMonth{Day: 16, Month: time.December}, wantOK: true},
		{name: "month day", text: "Dec 16 Paid to Raj", want: DayMonth{Day: 16, Month: time.December}, wantOK: true},
		{name: "single digit", text: "Jan 5", want: DayMonth{Day: 5, Month: time.January}, wantOK: true},
		{name: "not on first line", text: "Paid to Raj\nTag: on 3 Mar", want: DayMonth{Day: 3, Month: time.March}, wantOK: true},
		{name: "first occurrence wins", text: "Dec 31 Paid to A\n1 Jan", want: DayMonth{Day: 31, Month: time.December}, wantOK: true},
		{name: "out of range day still extracted", text: "30 Feb", want: DayMonth{Day: 30, Month: time.February}, wantOK: true},
		{name: "month and year only", text: "Statement Jan 2025", wantOK: false},
		{name: "three digit day", text: "116 Dec", wantOK: false},
		{name: "month prefix of a word", text: "Paid to 3 Marigold Stores", wantOK: false},
		{name: "full month name", text: "16 December", wantOK: false},
		{name: "month followed by punctuation", text: "Paid on 3 Mar, Rs.5", want: DayMonth{Day: 3, Month: time.March}, wantOK: true},
		{name: "lower case month", text: "16 dec", wantOK: false},
		{name: "no date", text: "Paid to Raj Rs.250", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatcher_Find(t *testing.T) {
	m, ok := AmountMatcher.Find("x - Rs.5")
	require.True(t, ok)
	assert.Equal(t, "- Rs.5", m.Text)
	assert.Equal(t, "-", m.Group(0))
	assert.Equal(t, "5", m.Group(1))
	assert.Equal(t, "", m.Group(7))
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, 8, m.End)

	_, ok = AmountMatcher.Find("nothing")
	assert.False(t, ok)
	assert.NotEmpty(t, AmountMatcher.Capture)
	assert.Equal(t, "amount", AmountMatcher.Name)
}

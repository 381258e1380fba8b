package statement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAnchorLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "16 Dec  Paid to Raj", want: true},
		{line: "1 Jan", want: true},
		{line: "Dec 16 Paid to Raj", want: true},
		{line: "Sep 3", want: true},
		{line: "  16 Dec indented by layout extraction", want: true},
		{line: "16 December 2024", want: false},
		{line: "3 Marigold Stores Rs.5", want: false},
		{line: "Dec 160 Paid to Raj", want: false},
		{line: "dec 16", want: false},
		{line: "16 dec", want: false},
		{line: "2024 Dec", want: false},
		{line: "Tag: #Food 16 Dec", want: false},
		{line: "UPI ID: raj@upi", want: false},
		{line: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAnchorLine(tt.line))
		})
	}
}

func TestSegment(t *testing.T) {
	lines := []string{
		"16 Dec Paid to A Rs.1",
		"UPI ID: a@upi",
		"Dec 15 Paid to B Rs.2",
		"Tag: #Food 15 Dec",
		"1 Jan Received from C Rs.3",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 3)
	assert.Equal(t, []string{"16 Dec Paid to A Rs.1", "UPI ID: a@upi"}, blocks[0].Lines)
	assert.Equal(t, []string{"Dec 15 Paid to B Rs.2", "Tag: #Food 15 Dec"}, blocks[1].Lines)
	assert.Equal(t, []string{"1 Jan Received from C Rs.3"}, blocks[2].Lines)
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
		assert.True(t, IsAnchorLine(b.Lines[0]))
	}
}

func TestSegment_Preamble(t *testing.T) {
	lines := []string{
		"Paytm Wallet Statement",
		"For 1 Dec to 31 Jan",
		"16 Dec Paid to A Rs.1",
	}

	blocks := Segment(lines)

	require.Len(t, blocks, 2)
	assert.False(t, IsAnchorLine(blocks[0].Lines[0]))
	assert.Equal(t, "Paytm Wallet Statement\nFor 1 Dec to 31 Jan", blocks[0].Text())
	assert.True(t, IsAnchorLine(blocks[1].Lines[0]))
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, Segment(nil))
	assert.Empty(t, SegmentText(""))
	assert.Empty(t, SegmentText(" \n\t"))
}

func TestSegmentText_CRLF(t *testing.T) {
	blocks := SegmentText("16 Dec Paid to A Rs.1\r\nUPI ID: a\r\nDec 17 Paid to B Rs.2")

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"16 Dec Paid to A Rs.1", "UPI ID: a"}, blocks[0].Lines)
}

func TestSegment_BlockCountMatchesAnchors(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	for n := 1; n <= 25; n++ {
		var lines []string
		for i := 0; i < n; i++ {
			month := months[i%len(months)]
			if i%2 == 0 {
				lines = append(lines, fmt.Sprintf("%d %s Paid to Shop %d  - Rs.%d", i%28+1, month, i, i+1))
			} else {
				lines = append(lines, fmt.Sprintf("%s %d Paid to Shop %d  - Rs.%d", month, i%28+1, i, i+1))
			}
			lines = append(lines, fmt.Sprintf("UPI ID: shop%d@upi  Tag: #Food on %d %s", i, i%28+1, month))
		}

		assert.Len(t, Segment(lines), n, "n=%d", n)
	}
}

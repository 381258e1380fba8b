package statement

import (
	"strings"

	"fjacquet/finflow/internal/textutils"
)

// Block is a contiguous run of statement lines believed to describe one
// transaction. Index is the block's position in the statement.
type Block struct {
	Index int
	Lines []string
}

// Text joins the block's lines with newlines.
func (b Block) Text() string {
	return textutils.JoinLines(b.Lines)
}

// IsAnchorLine reports whether line starts a new block.
func IsAnchorLine(line string) bool {
	return DateAnchorMatcher.MatchString(line)
}

// Segment splits lines into blocks. Each anchor line starts a new block; every
// other line joins the current one. Lines before the first anchor form a
// preamble block. Dates in the middle of a line never split.
func Segment(lines []string) []Block {
	var blocks []Block
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, Block{Index: len(blocks), Lines: current})
		current = nil
	}

	for _, line := range lines {
		if IsAnchorLine(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// SegmentText splits raw text into lines, tolerating CRLF, and segments them.
func SegmentText(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return Segment(textutils.SplitLines(text))
}

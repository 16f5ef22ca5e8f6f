package export

import (
	"fmt"

	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// MaxWindow is the largest number of rows one export may span. The check
// runs before any query so an oversized request never touches the database.
const MaxWindow = 50000

// Range is a validated 1-based inclusive export window
type Range struct {
	Start int
	End   int
}

// ParseRange validates startRange/endRange as received on the query string
func ParseRange(start, end int) (Range, error) {
	if start < 1 || end < 1 {
		return Range{}, shared.NewDomainError("BAD_REQUEST", "startRange and endRange must be at least 1")
	}
	if end < start {
		return Range{}, shared.NewDomainError("BAD_REQUEST", "endRange must not be less than startRange")
	}
	if end-start+1 > MaxWindow {
		return Range{}, shared.NewDomainError("BAD_REQUEST",
			fmt.Sprintf("Export window cannot exceed %d documents", MaxWindow))
	}
	return Range{Start: start, End: end}, nil
}

// Skip returns the number of documents to skip before the window
func (r Range) Skip() int {
	return r.Start - 1
}

// Limit returns the window size
func (r Range) Limit() int {
	return r.End - r.Start + 1
}

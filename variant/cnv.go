package variant

import "fmt"

// CNV is a copy-number call over the inclusive interval [Start, End].
type CNV struct {
	Chrom      string
	Start, End int
	// State is the categorical copy-number state, e.g. "loss" or "gain".
	State string
	// Median is the caller's signal summary for the interval.
	Median float64
	Sample string
	Caller string
}

// NewCNV validates and normalizes a CNV interval.
func NewCNV(chrom string, start, end int, state string, median float64) (CNV, error) {
	c, err := NormalizeChrom(chrom)
	if err != nil {
		return CNV{}, err
	}
	if start < 1 {
		return CNV{}, Errorf(MalformedField, "%s:%d-%d: positions are 1-based", chrom, start, end)
	}
	if end < start {
		return CNV{}, Errorf(InvalidInterval, "%s:%d-%d ends before it starts", chrom, start, end)
	}
	return CNV{Chrom: c, Start: start, End: end, State: state, Median: median}, nil
}

// Len is the number of bases covered.
func (c *CNV) Len() int { return c.End - c.Start + 1 }

// Overlap returns the number of bases c and o share.
func (c *CNV) Overlap(o *CNV) int {
	if c.Chrom != o.Chrom {
		return 0
	}
	start, end := c.Start, c.End
	if o.Start > start {
		start = o.Start
	}
	if o.End < end {
		end = o.End
	}
	if n := end - start + 1; n > 0 {
		return n
	}
	return 0
}

// MutualOverlap reports whether c and o share at least threshold of each
// one's length and agree on State.
func (c *CNV) MutualOverlap(o *CNV, threshold float64) bool {
	if c.State != o.State {
		return false
	}
	n := c.Overlap(o)
	if n == 0 {
		return false
	}
	return float64(n)/float64(c.Len()) >= threshold &&
		float64(n)/float64(o.Len()) >= threshold
}

func (c CNV) String() string {
	return fmt.Sprintf("%s:%d-%d(%s)", c.Chrom, c.Start, c.End, c.State)
}

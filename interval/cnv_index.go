package interval

import "github.com/grailbio/svdistil/variant"

// CNVIndex is a per-chromosome index over CNV intervals.  Ids are indexes
// into the indexed list.
type CNVIndex struct {
	*Tree
}

// NewCNVIndex builds the index.  CNV coordinates are inclusive, so each call
// is stored as [Start, End+1).
func NewCNVIndex(cnvs []variant.CNV) (*CNVIndex, error) {
	t := NewTree()
	for i := range cnvs {
		c := &cnvs[i]
		if err := t.Insert(c.Chrom, c.Start, c.End+1, i); err != nil {
			return nil, err
		}
	}
	t.Build()
	return &CNVIndex{t}, nil
}

// Candidates returns, sorted ascending, the ids of indexed CNVs that share at
// least one base with c.
func (idx *CNVIndex) Candidates(c *variant.CNV) []int {
	return idx.QueryRange(c.Chrom, c.Start, c.End+1)
}

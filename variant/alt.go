package variant

import (
	"regexp"
	"strconv"
)

// BNDAlt is the parsed form of a VCF breakend ALT (VCF 4.2 section 5.4).
// The REF base s is replaced by Seq, and the piece at MateChrom:MatePos is
// joined to it:
//
//	t[p[   piece extending to the right of p is joined after t
//	t]p]   reverse comp piece extending left of p is joined after t
//	]p]t   piece extending to the left of p is joined before t
//	[p[t   reverse comp piece extending right of p is joined before t
type BNDAlt struct {
	Seq       string
	MateChrom string
	MatePos   int
	// Side1 belongs to the record's own position, Side2 to the mate.
	Side1, Side2 Side
}

// InsertLen is the number of bases inserted at the junction, i.e. Seq
// without its reference base.
func (a BNDAlt) InsertLen() int {
	if len(a.Seq) <= 1 {
		return 0
	}
	return len(a.Seq) - 1
}

// The mate chromosome may contain ':' (e.g. HLA contigs); the greedy match
// splits at the last colon.
var bndForms = [...]struct {
	re           *regexp.Regexp
	seqFirst     bool
	side1, side2 Side
}{
	{regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+):(\d+)\[$`), true, Right, Left},
	{regexp.MustCompile(`^([^\[\]]+)\]([^\[\]]+):(\d+)\]$`), true, Right, Right},
	{regexp.MustCompile(`^\]([^\[\]]+):(\d+)\]([^\[\]]+)$`), false, Left, Right},
	{regexp.MustCompile(`^\[([^\[\]]+):(\d+)\[([^\[\]]+)$`), false, Left, Left},
}

// ParseBNDAlt parses the ALT field of a BND record. alts must hold exactly
// one entry.
func ParseBNDAlt(alts []string) (BNDAlt, error) {
	if len(alts) != 1 {
		return BNDAlt{}, Errorf(MalformedAlt, "BND ALT field without exactly one entry: %v", alts)
	}
	alt := alts[0]
	for _, form := range bndForms {
		m := form.re.FindStringSubmatch(alt)
		if m == nil {
			continue
		}
		var seq, chrom, pos string
		if form.seqFirst {
			seq, chrom, pos = m[1], m[2], m[3]
		} else {
			chrom, pos, seq = m[1], m[2], m[3]
		}
		matePos, err := strconv.Atoi(pos)
		if err != nil {
			return BNDAlt{}, Errorf(MalformedAlt, "cannot parse mate position in %q", alt)
		}
		mateChrom, err := NormalizeChrom(chrom)
		if err != nil {
			return BNDAlt{}, err
		}
		return BNDAlt{
			Seq:       seq,
			MateChrom: mateChrom,
			MatePos:   matePos,
			Side1:     form.side1,
			Side2:     form.side2,
		}, nil
	}
	return BNDAlt{}, Errorf(MalformedAlt, "cannot parse coordinate from BND ALT field %q", alt)
}

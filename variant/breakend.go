package variant

import (
	"fmt"
	"strings"
)

// Side identifies which side of a breakend position takes part in the join.
// The numeric values define the side component of the breakend order.
type Side uint8

const (
	// Left means the sequence to the left of the position is joined.
	Left Side = iota
	// Right means the sequence to the right of the position is joined.
	Right
	// Unknown is used for interval SV types (DEL, DUP, INV, INS) whose
	// records carry no orientation.
	Unknown
)

func (s Side) String() string {
	switch s {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "."
	}
}

// ParseSide parses the sense column of a distilled row: "L", "R" or "." (or
// empty) for Unknown.
func ParseSide(s string) (Side, error) {
	switch s {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	case ".", "":
		return Unknown, nil
	}
	return Unknown, Errorf(MalformedField, "unknown sense %q", s)
}

// NormalizeChrom strips a leading "chr" from name. It fails if nothing
// remains.
func NormalizeChrom(name string) (string, error) {
	name = strings.TrimPrefix(name, "chr")
	if name == "" {
		return "", Errorf(EmptyChromosomeName, "empty chromosome name")
	}
	return name, nil
}

// BreakEnd is one end of a structural variant.
type BreakEnd struct {
	// Chrom is the normalized chromosome name (no "chr" prefix).
	Chrom string
	// Pos is the 1-based position.
	Pos  int
	Side Side
}

// NewBreakEnd creates a BreakEnd, normalizing the chromosome name.  pos must
// be at least 1.
func NewBreakEnd(chrom string, pos int, side Side) (BreakEnd, error) {
	c, err := NormalizeChrom(chrom)
	if err != nil {
		return BreakEnd{}, err
	}
	if err := checkPos(chrom, pos); err != nil {
		return BreakEnd{}, err
	}
	return BreakEnd{Chrom: c, Pos: pos, Side: side}, nil
}

func checkPos(chrom string, pos int) error {
	if pos < 1 {
		return Errorf(MalformedField, "%s:%d: positions are 1-based", chrom, pos)
	}
	return nil
}

// Compare orders breakends lexicographically on (Chrom, Pos, Side). It
// returns -1, 0 or +1.
func Compare(a, b BreakEnd) int {
	if a.Chrom != b.Chrom {
		if a.Chrom < b.Chrom {
			return -1
		}
		return 1
	}
	if a.Pos != b.Pos {
		if a.Pos < b.Pos {
			return -1
		}
		return 1
	}
	if a.Side != b.Side {
		if a.Side < b.Side {
			return -1
		}
		return 1
	}
	return 0
}

// Less is shorthand for Compare(b, o) < 0.
func (b BreakEnd) Less(o BreakEnd) bool { return Compare(b, o) < 0 }

func (b BreakEnd) String() string {
	return fmt.Sprintf("%s:%d:%v", b.Chrom, b.Pos, b.Side)
}

// Order returns a and b as (low, high). Each side stays attached to its own
// breakend.
func Order(a, b BreakEnd) (low, high BreakEnd) {
	if Compare(b, a) < 0 {
		return b, a
	}
	return a, b
}

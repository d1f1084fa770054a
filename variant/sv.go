package variant

import "fmt"

// SV types accepted by Normalize.
const (
	TypeBND = "BND"
	TypeDEL = "DEL"
	TypeINV = "INV"
	TypeDUP = "DUP"
	TypeINS = "INS"
)

// SV is a breakend structural variant in canonical form: Low <= High under
// Compare.
type SV struct {
	Low, High BreakEnd
	InsertLen int
	// Qual is nil when the quality is missing.
	Qual       *float64
	FilterPass bool
	// Samples supporting the call. Distilled rows carry exactly one.
	Samples []string
	// Caller is the calling algorithm, if tracked.
	Caller string
}

// NewSV returns an SV holding a and b in canonical order.
func NewSV(a, b BreakEnd) SV {
	low, high := Order(a, b)
	return SV{Low: low, High: high}
}

// Canonical reports whether Low <= High.
func (v *SV) Canonical() bool { return Compare(v.Low, v.High) <= 0 }

// Interchromosomal reports whether the two breakends lie on different
// chromosomes (an "ITX" event).
func (v *SV) Interchromosomal() bool { return v.Low.Chrom != v.High.Chrom }

func (v SV) String() string {
	return fmt.Sprintf("%v-%v", v.Low, v.High)
}

// Normalize converts r into a canonical breakend SV. Quality and filter are
// copied but not checked; see Gate.
func Normalize(r *Record) (SV, error) {
	svType := r.SVType()
	var (
		b1, b2    BreakEnd
		insertLen int
		err       error
	)
	switch svType {
	case TypeBND:
		var alt BNDAlt
		if alt, err = ParseBNDAlt(r.Alt); err != nil {
			return SV{}, err
		}
		if b1, err = NewBreakEnd(r.Chrom, r.Pos, alt.Side1); err != nil {
			return SV{}, err
		}
		b2 = BreakEnd{Chrom: alt.MateChrom, Pos: alt.MatePos, Side: alt.Side2}
		insertLen = alt.InsertLen()
	case TypeDEL, TypeINV, TypeDUP, TypeINS:
		end := r.End
		if end == 0 {
			end = r.Pos
		}
		if b1, err = NewBreakEnd(r.Chrom, r.Pos, Unknown); err != nil {
			return SV{}, err
		}
		b2 = BreakEnd{Chrom: b1.Chrom, Pos: end, Side: Unknown}
		if svType == TypeINS {
			insertLen = r.svLen()
		}
	default:
		return SV{}, Errorf(UnsupportedSVType, "unsupported SVTYPE %q at %s:%d", svType, r.Chrom, r.Pos)
	}
	if err := checkPos(b2.Chrom, b2.Pos); err != nil {
		return SV{}, err
	}
	sv := NewSV(b1, b2)
	sv.InsertLen = insertLen
	sv.Qual = r.Qual
	sv.FilterPass = r.FilterPass()
	sv.Samples = r.CarrierSamples()
	return sv, nil
}

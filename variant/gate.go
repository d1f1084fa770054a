package variant

// Gate decides which records are worth normalizing.
type Gate struct {
	// MinQual, if non-nil, drops records with QUAL below it. A record with a
	// missing QUAL passes only when *MinQual == 0.
	MinQual *float64
	// PassOnly drops records whose FILTER is not PASS.
	PassOnly bool
}

// Keep reports whether r passes the quality and filter thresholds and has
// at least one sample with a non-reference genotype.
func (g Gate) Keep(r *Record) bool {
	if g.MinQual != nil {
		if r.Qual == nil {
			if *g.MinQual != 0 {
				return false
			}
		} else if *r.Qual < *g.MinQual {
			return false
		}
	}
	if g.PassOnly && !r.FilterPass() {
		return false
	}
	return len(r.CarrierSamples()) > 0
}

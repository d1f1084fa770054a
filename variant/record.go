package variant

import (
	"strconv"
	"strings"
)

// Record is one already-parsed SV record, as produced by a VCF reader.
type Record struct {
	Chrom string
	// Pos is 1-based.
	Pos int
	// End is the INFO END value, or 0 if absent.
	End int
	Alt []string
	// Qual is nil when QUAL is missing.
	Qual   *float64
	Filter string
	Info   map[string]string
	// Samples and Genotypes are parallel. Each genotype lists allele indices
	// (0 = reference, -1 = missing).
	Samples   []string
	Genotypes [][]int
}

// SVType returns the INFO SVTYPE value, or "." if it is missing.
func (r *Record) SVType() string {
	if t, ok := r.Info["SVTYPE"]; ok && t != "" {
		return t
	}
	return "."
}

// FilterPass reports whether FILTER is PASS. A missing filter ("." or
// empty) counts as passing.
func (r *Record) FilterPass() bool {
	switch r.Filter {
	case "PASS", ".", "":
		return true
	}
	return false
}

// CarrierSamples lists, in record order, the samples whose genotype carries
// at least one non-reference allele.
func (r *Record) CarrierSamples() []string {
	var samples []string
	for i, gt := range r.Genotypes {
		if i >= len(r.Samples) {
			break
		}
		for _, allele := range gt {
			if allele > 0 {
				samples = append(samples, r.Samples[i])
				break
			}
		}
	}
	return samples
}

// svLen returns |SVLEN| from INFO, or 0.  Multi-valued SVLEN uses the first
// value.
func (r *Record) svLen() int {
	s, ok := r.Info["SVLEN"]
	if !ok {
		return 0
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if n < 0 {
		n = -n
	}
	return n
}

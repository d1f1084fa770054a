package svmerge

import "sort"

// upperMedian returns the element at len/2 of the sorted values; for an even
// count that is the upper of the two middle values.  vals must be non-empty.
func upperMedian(vals []int) int {
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

// mean returns the arithmetic mean of vals.  vals must be non-empty.
func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Evidence records which samples and callers support a merged event.
type Evidence struct {
	// Calls maps a sample to the number of member calls it contributed.
	Calls map[string]int
	// Callers maps a sample to the set of callers that reported it.
	Callers map[string]map[string]bool
}

func newEvidence() Evidence {
	return Evidence{Calls: map[string]int{}, Callers: map[string]map[string]bool{}}
}

func (e *Evidence) add(sample, caller string) {
	e.Calls[sample]++
	callers := e.Callers[sample]
	if callers == nil {
		callers = map[string]bool{}
		e.Callers[sample] = callers
	}
	callers[caller] = true
}

// NumSamples is the number of distinct supporting samples.
func (e *Evidence) NumSamples() int { return len(e.Calls) }

// NumCalls is the number of distinct supporting (sample, caller) pairs.
func (e *Evidence) NumCalls() int {
	n := 0
	for _, callers := range e.Callers {
		n += len(callers)
	}
	return n
}

// AvgCalls is NumCalls / NumSamples, or zero when there is no sample.
func (e *Evidence) AvgCalls() float64 {
	if len(e.Calls) == 0 {
		return 0
	}
	return float64(e.NumCalls()) / float64(len(e.Calls))
}

// Samples returns the supporting samples, sorted.
func (e *Evidence) Samples() []string {
	samples := make([]string, 0, len(e.Calls))
	for s := range e.Calls {
		samples = append(samples, s)
	}
	sort.Strings(samples)
	return samples
}

// Has reports whether caller reported the event in sample.
func (e *Evidence) Has(sample, caller string) bool {
	return e.Callers[sample][caller]
}

// registry collects the samples and callers seen in a batch.
type registry map[string]map[string]bool

func (r registry) add(sample, caller string) {
	callers := r[sample]
	if callers == nil {
		callers = map[string]bool{}
		r[sample] = callers
	}
	if caller != "" {
		callers[caller] = true
	}
}

// samples returns the known samples, sorted.
func (r registry) samples() []string {
	samples := make([]string, 0, len(r))
	for s := range r {
		samples = append(samples, s)
	}
	sort.Strings(samples)
	return samples
}

// callers returns, for each sample, its known callers sorted.
func (r registry) callers() map[string][]string {
	out := make(map[string][]string, len(r))
	for s, set := range r {
		callers := make([]string, 0, len(set))
		for c := range set {
			callers = append(callers, c)
		}
		sort.Strings(callers)
		out[s] = callers
	}
	return out
}

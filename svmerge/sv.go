package svmerge

import (
	"github.com/grailbio/svdistil/interval"
	"github.com/grailbio/svdistil/variant"
)

// SVRecord is a merged breakend event.
type SVRecord struct {
	// Low and High take chromosome and side from the representative member
	// and the upper median of the member positions.
	Low, High variant.BreakEnd
	// InsertLen is the upper median of the member insert lengths.
	InsertLen int
	// Qual is the mean quality of the members that have one, nil if none
	// does.
	Qual *float64
	// Members are indexes into the slice passed to MergeSVs, ascending.
	Members  []int
	Evidence Evidence
}

// SVCatalog is the result of MergeSVs.
type SVCatalog struct {
	Records []SVRecord
	// Samples lists every known sample, sorted.
	Samples []string
	// Callers lists the callers known for each sample, sorted.
	Callers map[string][]string
}

func chromPairKey(sv *variant.SV) string {
	return sv.Low.Chrom + "\x00" + sv.High.Chrom
}

// matchSV reports whether a and c have the same orientation at both ends.
func matchSV(a, c *variant.SV) bool {
	return a.Low.Side == c.Low.Side && a.High.Side == c.High.Side
}

// MergeSVs clusters breakend calls.  known lists samples to report even if
// they support no call.  Calls rejected by Opts.KeepSV are neither clustered
// nor reported.
func (b *Batch) MergeSVs(svs []variant.SV, known []string) (*SVCatalog, error) {
	reg := registry{}
	for _, s := range known {
		reg.add(s, "")
	}
	var (
		kept []variant.SV
		ids  []int
	)
	for i := range svs {
		sv := &svs[i]
		for _, s := range sv.Samples {
			reg.add(s, sv.Caller)
		}
		if b.Opts.KeepSV != nil && !b.Opts.KeepSV(sv) {
			b.Stats.Filtered++
			continue
		}
		if sv.Interchromosomal() {
			b.Stats.Interchromosomal++
		}
		kept = append(kept, *sv)
		ids = append(ids, i)
	}
	b.Stats.Variants += len(kept)
	b.Printf("clustering %d breakend calls (%d filtered), window %d", len(kept), b.Stats.Filtered, b.Opts.Window)

	catalog := &SVCatalog{Samples: reg.samples(), Callers: reg.callers()}
	if len(kept) == 0 {
		return catalog, nil
	}
	idx, err := interval.NewBreakendIndex(kept, b.Opts.Window)
	if err != nil {
		return nil, err
	}
	groups := shards(len(kept), func(id int) string { return chromPairKey(&kept[id]) })
	edges, err := b.findEdges(groups, len(kept),
		func(id int) []int { return idx.Candidates(&kept[id]) },
		func(a, c int) bool { return matchSV(&kept[a], &kept[c]) })
	if err != nil {
		return nil, err
	}
	for _, members := range b.cluster(len(kept), edges) {
		rec, err := b.reduceSVs(kept, members)
		if err != nil {
			return nil, err
		}
		for i, m := range rec.Members {
			rec.Members[i] = ids[m]
		}
		catalog.Records = append(catalog.Records, rec)
	}
	if b.Opts.Sort {
		sortSVRecords(catalog.Records)
	}
	b.Printf("breakend merge done: %v", b.Stats)
	return catalog, nil
}

// reduceSVs builds the consensus of the calls svs[members].  members must be
// ascending; the first one is the representative.
func (b *Batch) reduceSVs(svs []variant.SV, members []int) (SVRecord, error) {
	rep := &svs[members[0]]
	var (
		lows, highs, insertLens = make([]int, len(members)), make([]int, len(members)), make([]int, len(members))
		quals                   []float64
		evidence                = newEvidence()
		disagree                bool
	)
	for i, m := range members {
		sv := &svs[m]
		lows[i], highs[i], insertLens[i] = sv.Low.Pos, sv.High.Pos, sv.InsertLen
		if sv.Qual != nil {
			quals = append(quals, *sv.Qual)
		}
		for _, s := range sv.Samples {
			evidence.add(s, sv.Caller)
		}
		if sv.Low.Chrom != rep.Low.Chrom || sv.High.Chrom != rep.High.Chrom || !matchSV(sv, rep) {
			disagree = true
		}
	}
	if disagree {
		if b.Opts.StrictRepresentative {
			return SVRecord{}, variant.Errorf(variant.ClusterDisagreement,
				"cluster of %d calls around %v disagrees on chromosome or orientation", len(members), rep)
		}
		b.Stats.Disagreements++
		b.debugf("cluster of %d calls around %v disagrees on chromosome or orientation", len(members), rep)
	}
	low := variant.BreakEnd{Chrom: rep.Low.Chrom, Pos: upperMedian(lows), Side: rep.Low.Side}
	high := variant.BreakEnd{Chrom: rep.High.Chrom, Pos: upperMedian(highs), Side: rep.High.Side}
	low, high = variant.Order(low, high)
	rec := SVRecord{
		Low:       low,
		High:      high,
		InsertLen: upperMedian(insertLens),
		Members:   append([]int(nil), members...),
		Evidence:  evidence,
	}
	if len(quals) > 0 {
		q := mean(quals)
		rec.Qual = &q
	}
	return rec, nil
}

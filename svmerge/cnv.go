package svmerge

import (
	"github.com/grailbio/svdistil/interval"
	"github.com/grailbio/svdistil/variant"
)

// CNVRecord is a merged copy-number event.
type CNVRecord struct {
	Chrom string
	// Start and End are inclusive; see Opts.CNVSpan.
	Start, End int
	State      string
	// Median is the mean of the member signal medians.
	Median float64
	// Members are indexes into the slice passed to MergeCNVs, ascending.
	Members  []int
	Evidence Evidence
}

// CNVCatalog is the result of MergeCNVs.
type CNVCatalog struct {
	Records []CNVRecord
	// Samples lists every known sample, sorted.
	Samples []string
	// Callers lists the callers known for each sample, sorted.
	Callers map[string][]string
}

// MergeCNVs clusters copy-number calls.  known lists samples to report even
// if they support no call.  Calls rejected by Opts.KeepCNV are neither
// clustered nor reported.
func (b *Batch) MergeCNVs(cnvs []variant.CNV, known []string) (*CNVCatalog, error) {
	reg := registry{}
	for _, s := range known {
		reg.add(s, "")
	}
	var (
		kept []variant.CNV
		ids  []int
	)
	for i := range cnvs {
		c := &cnvs[i]
		reg.add(c.Sample, c.Caller)
		if b.Opts.KeepCNV != nil && !b.Opts.KeepCNV(c) {
			b.Stats.Filtered++
			continue
		}
		kept = append(kept, *c)
		ids = append(ids, i)
	}
	b.Stats.Variants += len(kept)
	b.Printf("clustering %d CNV calls (%d filtered), overlap %v", len(kept), b.Stats.Filtered, b.Opts.Overlap)

	catalog := &CNVCatalog{Samples: reg.samples(), Callers: reg.callers()}
	if len(kept) == 0 {
		return catalog, nil
	}
	idx, err := interval.NewCNVIndex(kept)
	if err != nil {
		return nil, err
	}
	threshold := b.Opts.Overlap
	groups := shards(len(kept), func(id int) string { return kept[id].Chrom })
	edges, err := b.findEdges(groups, len(kept),
		func(id int) []int { return idx.Candidates(&kept[id]) },
		func(a, c int) bool { return kept[a].MutualOverlap(&kept[c], threshold) })
	if err != nil {
		return nil, err
	}
	for _, members := range b.cluster(len(kept), edges) {
		rec, err := b.reduceCNVs(kept, members)
		if err != nil {
			return nil, err
		}
		for i, m := range rec.Members {
			rec.Members[i] = ids[m]
		}
		catalog.Records = append(catalog.Records, rec)
	}
	if b.Opts.Sort {
		sortCNVRecords(catalog.Records)
	}
	b.Printf("CNV merge done: %v", b.Stats)
	return catalog, nil
}

// reduceCNVs builds the consensus of the calls cnvs[members].  members must
// be ascending; the first one is the representative.
func (b *Batch) reduceCNVs(cnvs []variant.CNV, members []int) (CNVRecord, error) {
	rep := &cnvs[members[0]]
	var (
		starts, ends = make([]int, len(members)), make([]int, len(members))
		medians      = make([]float64, len(members))
		evidence     = newEvidence()
		disagree     bool
	)
	for i, m := range members {
		c := &cnvs[m]
		starts[i], ends[i], medians[i] = c.Start, c.End, c.Median
		evidence.add(c.Sample, c.Caller)
		if c.Chrom != rep.Chrom || c.State != rep.State {
			disagree = true
		}
	}
	if disagree {
		if b.Opts.StrictRepresentative {
			return CNVRecord{}, variant.Errorf(variant.ClusterDisagreement,
				"cluster of %d calls around %v disagrees on chromosome or state", len(members), rep)
		}
		b.Stats.Disagreements++
		b.debugf("cluster of %d calls around %v disagrees on chromosome or state", len(members), rep)
	}
	rec := CNVRecord{
		Chrom:    rep.Chrom,
		State:    rep.State,
		Median:   mean(medians),
		Members:  append([]int(nil), members...),
		Evidence: evidence,
	}
	switch b.Opts.CNVSpan {
	case SpanUnion:
		rec.Start, rec.End = starts[0], ends[0]
		for i := range members {
			if starts[i] < rec.Start {
				rec.Start = starts[i]
			}
			if ends[i] > rec.End {
				rec.End = ends[i]
			}
		}
	default:
		rec.Start, rec.End = upperMedian(starts), upperMedian(ends)
	}
	return rec, nil
}

package svmerge

import "fmt"

// Stats represents high-level statistics of one merge.
type Stats struct {
	// Variants is the number of calls that entered clustering.
	Variants int
	// Filtered is the number of calls dropped by Opts.KeepSV / Opts.KeepCNV.
	Filtered int
	// Interchromosomal is the number of breakend calls whose ends lie on
	// different chromosomes.
	Interchromosomal int
	// Candidates is the number of index hits examined, self hits included.
	Candidates int
	// Edges is the number of distinct pairs of matching calls.
	Edges int
	// Clusters is the number of consensus records produced.
	Clusters int
	// Singletons is the number of clusters with exactly one member.
	Singletons int
	// LargestCluster is the size of the largest cluster.
	LargestCluster int
	// Disagreements is the number of clusters whose members disagree on a
	// categorical field.
	Disagreements int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
// LargestCluster is the maximum of the two.
func (s Stats) Merge(o Stats) Stats {
	s.Variants += o.Variants
	s.Filtered += o.Filtered
	s.Interchromosomal += o.Interchromosomal
	s.Candidates += o.Candidates
	s.Edges += o.Edges
	s.Clusters += o.Clusters
	s.Singletons += o.Singletons
	if o.LargestCluster > s.LargestCluster {
		s.LargestCluster = o.LargestCluster
	}
	s.Disagreements += o.Disagreements
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("variants=%d filtered=%d itx=%d candidates=%d edges=%d clusters=%d singletons=%d largest=%d disagreements=%d",
		s.Variants, s.Filtered, s.Interchromosomal, s.Candidates, s.Edges, s.Clusters, s.Singletons, s.LargestCluster, s.Disagreements)
}

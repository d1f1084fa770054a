// Package distil turns raw structural-variant records into per-sample
// breakend rows, the input of the breakend merge.
package distil

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/svdistil/variant"
)

// Stats counts what happened to the records of one distil run.
type Stats struct {
	Records int
	// Dropped is the number of records rejected by the gate.
	Dropped int
	// SVs is the number of records kept; Rows is the number of per-sample
	// rows they expand to.
	SVs  int
	Rows int
	// Interchromosomal is the number of kept records whose breakends lie on
	// different chromosomes.
	Interchromosomal int
}

// Distil gates and normalizes records.  Each returned SV lists the samples
// that carry it; writing it produces one row per sample.  A record that fails
// to normalize aborts the run.
func Distil(records []variant.Record, gate variant.Gate) ([]variant.SV, Stats, error) {
	var (
		svs   []variant.SV
		stats = Stats{Records: len(records)}
	)
	for i := range records {
		r := &records[i]
		if !gate.Keep(r) {
			stats.Dropped++
			continue
		}
		sv, err := variant.Normalize(r)
		if err != nil {
			return nil, stats, err
		}
		if sv.Interchromosomal() {
			stats.Interchromosomal++
		}
		stats.SVs++
		stats.Rows += len(sv.Samples)
		svs = append(svs, sv)
	}
	log.Debug.Printf("distil: %d records, %d dropped, %d rows, %d interchromosomal",
		stats.Records, stats.Dropped, stats.Rows, stats.Interchromosomal)
	return svs, stats, nil
}

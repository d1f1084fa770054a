package svtsv

import (
	"context"
	"io"
	"math"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svdistil/variant"
)

// cnvRow is one row of a CNV call file.  Coordinates may be written as
// floats.
type cnvRow struct {
	Chr    string  `tsv:"chr"`
	Start  float64 `tsv:"start"`
	End    float64 `tsv:"end"`
	State  string  `tsv:"state"`
	Median float64 `tsv:"median"`
}

// sampledCNVRow is a cnvRow from a file that names the sample on each row.
type sampledCNVRow struct {
	Chr    string  `tsv:"chr"`
	Start  float64 `tsv:"start"`
	End    float64 `tsv:"end"`
	State  string  `tsv:"state"`
	Median float64 `tsv:"median"`
	Sample string  `tsv:"sample"`
}

// ReadCNVs reads CNV calls from r.  Calls are attributed to label.Sample
// unless the file has a sample column, and to label.Caller.  path is only
// used in error messages.
func ReadCNVs(r io.Reader, path string, label Label) ([]variant.CNV, error) {
	cnvs, _, err := readCNVs(r, path, label)
	return cnvs, err
}

// readCNVs is ReadCNVs that also reports whether the file has a sample
// column.
func readCNVs(r io.Reader, path string, label Label) (cnvs []variant.CNV, hasSample bool, err error) {
	tr, columns, err := newReader(r, path, cnvColumns)
	if err != nil {
		return nil, false, err
	}
	hasSample = columns["sample"]
	for line := 2; ; line++ {
		var (
			row    cnvRow
			sample = label.Sample
		)
		if hasSample {
			var s sampledCNVRow
			err = tr.Read(&s)
			row = cnvRow{Chr: s.Chr, Start: s.Start, End: s.End, State: s.State, Median: s.Median}
			if s.Sample != "" {
				sample = s.Sample
			}
		} else {
			err = tr.Read(&row)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, false, decodeError(err, path, line)
		}
		c, err := variant.NewCNV(row.Chr, int(math.Trunc(row.Start)), int(math.Trunc(row.End)), row.State, row.Median)
		if err != nil {
			return nil, false, variant.AtLine(err, path, line)
		}
		c.Sample = sample
		c.Caller = label.Caller
		cnvs = append(cnvs, c)
	}
	return cnvs, hasSample, nil
}

// ReadCNVFile reads a CNV call file, taking the caller, and the sample unless
// the file has a sample column, from its name.  sample is the sample the file
// name attributes calls to, or "" if the rows name their own samples.
func ReadCNVFile(ctx context.Context, path string) (cnvs []variant.CNV, sample string, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	label := ParseLabel(path)
	cnvs, hasSample, err := readCNVs(in, path, label)
	if err != nil {
		return nil, "", err
	}
	if hasSample {
		log.Printf("%s: read %d CNV calls", path, len(cnvs))
		return cnvs, "", nil
	}
	log.Printf("%s: read %d CNV calls for sample %s", path, len(cnvs), label.Sample)
	return cnvs, label.Sample, nil
}

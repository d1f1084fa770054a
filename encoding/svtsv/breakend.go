package svtsv

import (
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/svdistil/variant"
)

// breakendRow is one row of a distilled breakend file.
type breakendRow struct {
	Chr1      string `tsv:"chr1"`
	Pos1      int    `tsv:"pos1"`
	Chr2      string `tsv:"chr2"`
	Pos2      int    `tsv:"pos2"`
	Sense1    string `tsv:"sense1"`
	Sense2    string `tsv:"sense2"`
	InsertLen int    `tsv:"insertlen"`
	// Qual is "." when missing.
	Qual   string `tsv:"qual"`
	Sample string `tsv:"sample"`
}

// parseQual parses a quality column, returning nil for "." or "".
func parseQual(s string) (*float64, error) {
	if s == "." || s == "" {
		return nil, nil
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, variant.Errorf(variant.MalformedField, "qual %q: %v", s, err)
	}
	return &q, nil
}

func formatQual(q *float64) string {
	if q == nil {
		return "."
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}

func (row *breakendRow) sv(caller string) (variant.SV, error) {
	side1, err := variant.ParseSide(row.Sense1)
	if err != nil {
		return variant.SV{}, err
	}
	side2, err := variant.ParseSide(row.Sense2)
	if err != nil {
		return variant.SV{}, err
	}
	b1, err := variant.NewBreakEnd(row.Chr1, row.Pos1, side1)
	if err != nil {
		return variant.SV{}, err
	}
	b2, err := variant.NewBreakEnd(row.Chr2, row.Pos2, side2)
	if err != nil {
		return variant.SV{}, err
	}
	qual, err := parseQual(row.Qual)
	if err != nil {
		return variant.SV{}, err
	}
	sv := variant.NewSV(b1, b2)
	sv.InsertLen = row.InsertLen
	sv.Qual = qual
	sv.FilterPass = true
	sv.Samples = []string{row.Sample}
	sv.Caller = caller
	return sv, nil
}

// ReadBreakends reads distilled breakend rows from r.  Each row becomes one
// SV supported by the row's sample; caller is recorded on every SV.  path is
// only used in error messages.
func ReadBreakends(r io.Reader, path, caller string) ([]variant.SV, error) {
	tr, _, err := newReader(r, path, breakendColumns)
	if err != nil {
		return nil, err
	}
	var svs []variant.SV
	for line := 2; ; line++ {
		var row breakendRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, decodeError(err, path, line)
		}
		sv, err := row.sv(caller)
		if err != nil {
			return nil, variant.AtLine(err, path, line)
		}
		svs = append(svs, sv)
	}
	return svs, nil
}

// ReadBreakendFile reads a distilled breakend file.  The caller recorded on
// each SV comes from the file name; see ParseLabel.
func ReadBreakendFile(ctx context.Context, path string) (svs []variant.SV, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if svs, err = ReadBreakends(in, path, ParseLabel(path).Caller); err != nil {
		return nil, err
	}
	log.Printf("%s: read %d breakend rows", path, len(svs))
	return svs, nil
}

// WriteBreakends writes one distilled row per sample of each SV.
func WriteBreakends(w io.Writer, svs []variant.SV) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("chr1\tpos1\tchr2\tpos2\tsense1\tsense2\tinsertlen\tqual\tsample")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i := range svs {
		sv := &svs[i]
		for _, sample := range sv.Samples {
			tw.WriteString(sv.Low.Chrom)
			tw.WriteUint32(uint32(sv.Low.Pos))
			tw.WriteString(sv.High.Chrom)
			tw.WriteUint32(uint32(sv.High.Pos))
			tw.WriteString(sv.Low.Side.String())
			tw.WriteString(sv.High.Side.String())
			tw.WriteUint32(uint32(sv.InsertLen))
			tw.WriteString(formatQual(sv.Qual))
			tw.WriteString(sample)
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

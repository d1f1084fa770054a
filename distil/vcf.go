package distil

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/brentp/vcfgo"
	"github.com/grailbio/base/log"
	"github.com/grailbio/svdistil/encoding/svtsv"
	"github.com/grailbio/svdistil/variant"
)

// infoKeys are the INFO fields copied into a variant.Record.
var infoKeys = []string{"SVTYPE", "END", "SVLEN"}

func infoString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	case []int:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = strconv.Itoa(e)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	}
	return fmt.Sprint(v)
}

// float32ToFloat64 widens q through its shortest decimal form, so that a
// QUAL of 30.1 stays 30.1 rather than 30.100000381469727.
func float32ToFloat64(q float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(q), 'g', -1, 32), 64)
	if err != nil {
		return float64(q)
	}
	return f
}

// convert adapts a vcfgo variant.
func convert(v *vcfgo.Variant, samples []string) variant.Record {
	r := variant.Record{
		Chrom:   v.Chromosome,
		Pos:     int(v.Pos),
		Alt:     v.Alternate,
		Filter:  v.Filter,
		Info:    map[string]string{},
		Samples: samples,
	}
	if math.Float32bits(v.Quality) != math.Float32bits(vcfgo.MISSING_VAL) {
		q := float32ToFloat64(v.Quality)
		r.Qual = &q
	}
	info := v.Info()
	for _, key := range infoKeys {
		if val, err := info.Get(key); err == nil && val != nil {
			r.Info[key] = infoString(val)
		}
	}
	if end, err := strconv.Atoi(r.Info["END"]); err == nil {
		r.End = end
	}
	r.Genotypes = make([][]int, len(v.Samples))
	for i, s := range v.Samples {
		if s != nil {
			r.Genotypes[i] = s.GT
		}
	}
	return r
}

// ReadVCF reads every record of a VCF stream.  Problems vcfgo tolerates,
// such as undeclared INFO fields, are logged.  path is only used in messages.
func ReadVCF(r io.Reader, path string) ([]variant.Record, error) {
	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	samples := rdr.Header.SampleNames
	var records []variant.Record
	for {
		v := rdr.Read()
		if v == nil {
			break
		}
		records = append(records, convert(v, samples))
	}
	if err := rdr.Error(); err != nil {
		log.Error.Printf("%s: %v", path, err)
	}
	return records, nil
}

// DistilFile reads, gates and normalizes the VCF at path.
func DistilFile(ctx context.Context, path string, gate variant.Gate) (svs []variant.SV, stats Stats, err error) {
	in, err := svtsv.Open(ctx, path)
	if err != nil {
		return nil, stats, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	records, err := ReadVCF(in, path)
	if err != nil {
		return nil, stats, err
	}
	if svs, stats, err = Distil(records, gate); err != nil {
		return nil, stats, variant.AtLine(err, path, 0)
	}
	log.Printf("%s: %d of %d records kept, %d rows", path, stats.SVs, stats.Records, stats.Rows)
	return svs, stats, nil
}

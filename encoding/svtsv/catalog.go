package svtsv

import (
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/svdistil/svmerge"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteSVCatalog writes merged breakend events.  Without trackCallers the
// columns are chr1, pos1, chr2, pos2, sense1, sense2, qual, num_samples and
// samples (";"-separated).  With trackCallers they are chr1, pos1, chr2,
// pos2, num_samples and avg_pos_calls, followed for each known sample by its
// call count and one 0/1 column per caller known for that sample.
func WriteSVCatalog(w io.Writer, catalog *svmerge.SVCatalog, trackCallers bool) error {
	tw := tsv.NewWriter(w)
	if trackCallers {
		tw.WriteString("chr1\tpos1\tchr2\tpos2\tnum_samples\tavg_pos_calls")
		writeEvidenceHeader(tw, catalog.Samples, catalog.Callers)
	} else {
		tw.WriteString("chr1\tpos1\tchr2\tpos2\tsense1\tsense2\tqual\tnum_samples\tsamples")
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i := range catalog.Records {
		rec := &catalog.Records[i]
		tw.WriteString(rec.Low.Chrom)
		tw.WriteUint32(uint32(rec.Low.Pos))
		tw.WriteString(rec.High.Chrom)
		tw.WriteUint32(uint32(rec.High.Pos))
		if trackCallers {
			tw.WriteUint32(uint32(rec.Evidence.NumSamples()))
			tw.WriteString(formatFloat(rec.Evidence.AvgCalls()))
			for _, sample := range catalog.Samples {
				tw.WriteUint32(uint32(rec.Evidence.Calls[sample]))
				for _, caller := range catalog.Callers[sample] {
					tw.WriteString(bit(rec.Evidence.Has(sample, caller)))
				}
			}
		} else {
			tw.WriteString(rec.Low.Side.String())
			tw.WriteString(rec.High.Side.String())
			tw.WriteString(formatQual(rec.Qual))
			tw.WriteUint32(uint32(rec.Evidence.NumSamples()))
			tw.WriteString(strings.Join(rec.Evidence.Samples(), ";"))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCNVCatalog writes merged CNV events: chr, start, end, state, median
// and num_pos_samples, then one column per known sample holding 0 or 1.  With
// trackCallers a num_pos_calls column precedes the sample columns, which then
// hold the number of callers supporting the event in that sample.
func WriteCNVCatalog(w io.Writer, catalog *svmerge.CNVCatalog, trackCallers bool) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("chr\tstart\tend\tstate\tmedian\tnum_pos_samples")
	if trackCallers {
		tw.WriteString("num_pos_calls")
	}
	for _, sample := range catalog.Samples {
		tw.WriteString(sample)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i := range catalog.Records {
		rec := &catalog.Records[i]
		tw.WriteString(rec.Chrom)
		tw.WriteUint32(uint32(rec.Start))
		tw.WriteUint32(uint32(rec.End))
		tw.WriteString(rec.State)
		tw.WriteString(formatFloat(rec.Median))
		tw.WriteUint32(uint32(rec.Evidence.NumSamples()))
		if trackCallers {
			tw.WriteUint32(uint32(rec.Evidence.NumCalls()))
		}
		for _, sample := range catalog.Samples {
			if trackCallers {
				tw.WriteUint32(uint32(len(rec.Evidence.Callers[sample])))
			} else {
				tw.WriteString(bit(rec.Evidence.Calls[sample] > 0))
			}
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeEvidenceHeader(tw *tsv.Writer, samples []string, callers map[string][]string) {
	for _, sample := range samples {
		tw.WriteString(sample)
		for _, caller := range callers[sample] {
			tw.WriteString(sample + ":" + caller)
		}
	}
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

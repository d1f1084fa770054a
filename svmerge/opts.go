package svmerge

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/svdistil/variant"
	"gopkg.in/yaml.v3"
)

// CNVSpan selects how the interval of a merged CNV is computed.
type CNVSpan string

const (
	// SpanMedian takes the upper median of the member starts and ends.
	SpanMedian CNVSpan = "median"
	// SpanUnion takes the smallest start and the largest end.
	SpanUnion CNVSpan = "union"
)

// Opts controls a merge.
type Opts struct {
	// Window is the breakend clustering window in bases.  window/2 bases
	// before a breakend and the rest after it count as the same position.
	Window int `yaml:"window"`
	// Overlap is the minimum fraction of each CNV's length that two CNVs must
	// share to be merged.
	Overlap float64 `yaml:"overlap"`

	// MinQual and PassOnly configure the record gate applied when distilling
	// VCF records.  MinQual is nil when no minimum is set.
	MinQual  *float64 `yaml:"qual"`
	PassOnly bool     `yaml:"ispass"`

	// Parallelism is the number of workers that search for overlapping
	// calls.  Zero means one per CPU.
	Parallelism int `yaml:"parallelism"`

	// StrictRepresentative makes a merge fail when the members of a cluster
	// disagree on chromosome, orientation or state.  Otherwise the fields of
	// the member with the smallest id are used and disagreements are counted.
	StrictRepresentative bool `yaml:"strict"`
	// CNVSpan selects the interval reported for merged CNVs.
	CNVSpan CNVSpan `yaml:"cnv-span"`
	// TrackCallers adds per-caller evidence columns to the output.
	TrackCallers bool `yaml:"callers"`
	// Sort orders the output by genomic position instead of by cluster.
	Sort bool `yaml:"sort"`

	// KeepSV and KeepCNV, when non-nil, drop the calls for which they return
	// false before clustering.
	KeepSV  func(*variant.SV) bool  `yaml:"-"`
	KeepCNV func(*variant.CNV) bool `yaml:"-"`
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Window:      50,
	Overlap:     0.75,
	Parallelism: 0,
	CNVSpan:     SpanMedian,
}

// Validate checks that the options are usable.
func (o *Opts) Validate() error {
	if o.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", o.Window)
	}
	if o.Overlap < 0 || o.Overlap > 1 {
		return fmt.Errorf("overlap must be in [0, 1], got %v", o.Overlap)
	}
	if o.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", o.Parallelism)
	}
	switch o.CNVSpan {
	case SpanMedian, SpanUnion:
	default:
		return fmt.Errorf("cnv-span must be %q or %q, got %q", SpanMedian, SpanUnion, o.CNVSpan)
	}
	return nil
}

// Gate returns the record gate configured by MinQual and PassOnly.
func (o *Opts) Gate() variant.Gate {
	return variant.Gate{MinQual: o.MinQual, PassOnly: o.PassOnly}
}

// ConfigError reports an options file that was read but is not valid.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return e.Path + ": " + e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// LoadOpts reads a YAML options file.  Keys absent from the file keep their
// value from base.  The result is validated.  A file that cannot be parsed or
// holds invalid values yields a *ConfigError; other errors come from reading
// the file.
func LoadOpts(ctx context.Context, path string, base Opts) (opts Opts, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return base, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	data, err := ioutil.ReadAll(in.Reader(ctx))
	if err != nil {
		return base, errors.E(err, "read", path)
	}
	opts = base
	if err = yaml.Unmarshal(data, &opts); err != nil {
		return base, &ConfigError{Path: path, Err: err}
	}
	if err = opts.Validate(); err != nil {
		return base, &ConfigError{Path: path, Err: err}
	}
	return opts, nil
}

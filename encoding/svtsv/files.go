package svtsv

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// Input is an open input file.
type Input struct {
	io.Reader
	f  file.File
	gz *gzip.Reader
}

// Open opens path for reading, decompressing it if its name ends in ".gz".
func Open(ctx context.Context, path string) (*Input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	in := &Input{Reader: f.Reader(ctx), f: f}
	if fileio.DetermineType(path) == fileio.Gzip {
		if in.gz, err = gzip.NewReader(in.Reader); err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "gunzip", path)
		}
		in.Reader = in.gz
	}
	return in, nil
}

// Close closes the file.
func (in *Input) Close(ctx context.Context) error {
	e := errors.Once{}
	if in.gz != nil {
		e.Set(in.gz.Close())
	}
	e.Set(in.f.Close(ctx))
	return e.Err()
}

// Output is an open output file.
type Output struct {
	io.Writer
	f    file.File
	bgzf *bgzf.Writer
}

// Create opens path for writing, BGZF-compressing the output if its name ends
// in ".gz".  An empty path or "-" writes to stdout.
func Create(ctx context.Context, path string) (*Output, error) {
	if path == "" || path == "-" {
		return &Output{Writer: os.Stdout}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	out := &Output{Writer: f.Writer(ctx), f: f}
	if fileio.DetermineType(path) == fileio.Gzip {
		out.bgzf = bgzf.NewWriter(out.Writer, 1)
		out.Writer = out.bgzf
	}
	return out, nil
}

// Close flushes and closes the file.  It is a no-op for stdout.
func (out *Output) Close(ctx context.Context) error {
	e := errors.Once{}
	if out.bgzf != nil {
		e.Set(out.bgzf.Close())
	}
	if out.f != nil {
		e.Set(out.f.Close(ctx))
	}
	return e.Err()
}

// Label is the sample and caller encoded in an input file name of the form
// <sample>[.<caller>].<ext>, e.g. "S1.cnvkit.tsv" or "S1.tsv.gz".
type Label struct {
	Sample, Caller string
}

// knownExts are stripped from the end of a file name before it is split.
var knownExts = map[string]bool{
	"tsv": true, "txt": true, "gz": true, "bgz": true, "cnv": true, "csv": true,
}

// ParseLabel extracts the label from the base name of path.  Dots separate the
// sample, the caller and the extensions; a name without a recognized
// extension keeps its last component as the extension.
func ParseLabel(path string) Label {
	fields := strings.Split(filepath.Base(path), ".")
	n := len(fields)
	for n > 1 && knownExts[strings.ToLower(fields[n-1])] {
		n--
	}
	if n == len(fields) && n > 1 {
		n--
	}
	fields = fields[:n]
	l := Label{Sample: fields[0]}
	if len(fields) > 1 {
		l.Caller = strings.Join(fields[1:], ".")
	}
	return l
}

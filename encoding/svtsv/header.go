package svtsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/svdistil/variant"
	"github.com/pkg/errors"
)

// Required columns of the input files.
var (
	breakendColumns = []string{"chr1", "pos1", "chr2", "pos2", "sense1", "sense2", "insertlen", "qual", "sample"}
	cnvColumns      = []string{"chr", "start", "end", "state", "median"}
)

// newReader checks that the header row of r names every required column and
// returns a tsv.Reader positioned at the header, together with the set of
// column names.
func newReader(r io.Reader, path string, required []string) (*tsv.Reader, map[string]bool, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, errors.Wrapf(err, "%s: read header", path)
	}
	if line == "" {
		return nil, nil, variant.AtLine(variant.Errorf(variant.MissingRequiredColumn, "no header row"), path, 1)
	}
	columns := map[string]bool{}
	for _, col := range strings.Split(strings.TrimRight(line, "\r\n"), "\t") {
		columns[col] = true
	}
	for _, col := range required {
		if !columns[col] {
			return nil, nil, variant.AtLine(variant.Errorf(variant.MissingRequiredColumn, "header lacks column %q", col), path, 1)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	tr := tsv.NewReader(io.MultiReader(strings.NewReader(line), br))
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	return tr, columns, nil
}

// decodeError converts an error returned by tsv.Reader.Read into a content
// error located at line.
func decodeError(err error, path string, line int) error {
	return variant.AtLine(variant.Errorf(variant.MalformedField, "%v", err), path, line)
}

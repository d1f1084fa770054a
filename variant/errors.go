package variant

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the content errors that abort a merge.
type ErrorKind int

const (
	// MalformedAlt is reported for a BND ALT field that has other than one
	// entry, or whose entry does not match one of the four breakend forms.
	MalformedAlt ErrorKind = iota + 1
	// UnsupportedSVType is reported for an SVTYPE other than BND, DEL, INV,
	// DUP or INS.
	UnsupportedSVType
	// EmptyChromosomeName is reported when a chromosome name is empty after
	// the "chr" prefix is removed.
	EmptyChromosomeName
	// MissingRequiredColumn is reported when a TSV header lacks a column.
	MissingRequiredColumn
	// MalformedField is reported for a field that cannot be parsed, e.g. a
	// non-numeric position or an unknown sense.
	MalformedField
	// InvalidInterval is reported for a CNV whose end precedes its start.
	InvalidInterval
	// ClusterDisagreement is reported in strict mode when the members of a
	// cluster disagree on chromosome, orientation or state.
	ClusterDisagreement
)

var kindNames = map[ErrorKind]string{
	MalformedAlt:          "malformed ALT",
	UnsupportedSVType:     "unsupported SVTYPE",
	EmptyChromosomeName:   "empty chromosome name",
	MissingRequiredColumn: "missing required column",
	MalformedField:        "malformed field",
	InvalidInterval:       "invalid interval",
	ClusterDisagreement:   "cluster disagreement",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a content error. Path and Line are set by readers that know where
// the offending row came from; Line is 1-based and counts the header.
type Error struct {
	Kind ErrorKind
	Msg  string
	Path string
	Line int
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v: %s", e.Path, e.Line, e.Kind, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %v: %s", e.Path, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

// Errorf creates an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsContentError reports whether err is an *Error of any kind.
func IsContentError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// AtLine attaches a location to err if it is an *Error without one.  Other
// errors are returned unchanged.
func AtLine(err error, path string, line int) error {
	var e *Error
	if !errors.As(err, &e) || e.Path != "" {
		return err
	}
	located := *e
	located.Path = path
	located.Line = line
	return &located
}

// Package svtsv reads and writes the tab-separated files exchanged by the
// distil and merge stages: distilled breakend rows, per-sample CNV calls and
// the merged catalogs.
//
// Every input file must start with a header row naming its columns; columns
// may appear in any order and extra columns are ignored.  Paths ending in
// ".gz" are read through gzip and written as BGZF.
package svtsv

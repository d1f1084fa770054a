package interval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/svdistil/variant"
	"github.com/klauspost/compress/gzip"
)

// Entry is a single region with 0-based, half-open coordinates.
type Entry struct {
	Chrom  string
	Start0 PosType
	End    PosType
}

// Regions is a set of genomic regions, merged into disjoint intervals.  For
// each chromosome the 0-based start of interval #k is stored in element [2k]
// and its end in element [2k+1], in increasing order.
type Regions struct {
	// byChrom is keyed by normalized chromosome name (no "chr" prefix).
	byChrom map[string][]PosType
}

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewRegions reads a BED file.  Only the first three columns are used; blank
// lines and "#", "track" and "browser" header lines are skipped.  The input
// need not be sorted.
func NewRegions(r io.Reader) (Regions, error) {
	scanner := bufio.NewScanner(r)
	var (
		tokens  [3][]byte
		entries []Entry
		lineIdx int
	)
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 || tokens[0][0] == '#' {
			continue
		}
		if s := gunsafe.BytesToString(tokens[0]); s == "track" || s == "browser" {
			continue
		}
		if nToken != 3 {
			return Regions{}, fmt.Errorf("interval.NewRegions: line %d has fewer tokens than expected", lineIdx)
		}
		start, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return Regions{}, fmt.Errorf("interval.NewRegions: line %d: %v", lineIdx, err)
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return Regions{}, fmt.Errorf("interval.NewRegions: line %d: %v", lineIdx, err)
		}
		if start < 0 || end < start || end >= PosTypeMax {
			return Regions{}, fmt.Errorf("interval.NewRegions: invalid coordinate pair on line %d", lineIdx)
		}
		// Must copy the chromosome name, since tokens refer to the scanner's
		// buffer.
		entries = append(entries, Entry{Chrom: string(tokens[0]), Start0: PosType(start), End: PosType(end)})
	}
	if err := scanner.Err(); err != nil {
		return Regions{}, err
	}
	return NewRegionsFromEntries(entries)
}

// NewRegionsFromPath is a wrapper for NewRegions that takes a path instead of
// an io.Reader. Gzipped BED files are recognized by their extension.
func NewRegionsFromPath(ctx context.Context, path string) (regions Regions, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	if regions, err = NewRegions(reader); err != nil {
		return
	}
	log.Printf("%s: loaded regions on %d chromosome(s), %d base(s) covered", path, len(regions.byChrom), regions.Bases())
	return
}

// NewRegionsFromEntries builds a Regions from entries in any order.  Empty
// entries are dropped; touching and overlapping ones are merged.
func NewRegionsFromEntries(entries []Entry) (Regions, error) {
	perChrom := map[string][]Entry{}
	for _, e := range entries {
		chrom, err := variant.NormalizeChrom(e.Chrom)
		if err != nil {
			return Regions{}, err
		}
		if e.Start0 < 0 || e.End < e.Start0 {
			return Regions{}, fmt.Errorf("interval.NewRegionsFromEntries: invalid coordinate pair [%d, %d)", e.Start0, e.End)
		}
		if e.End == e.Start0 {
			continue
		}
		perChrom[chrom] = append(perChrom[chrom], e)
	}
	regions := Regions{byChrom: make(map[string][]PosType, len(perChrom))}
	for chrom, chromEntries := range perChrom {
		sort.Slice(chromEntries, func(i, j int) bool { return chromEntries[i].Start0 < chromEntries[j].Start0 })
		var endpoints []PosType
		prevStart, prevEnd := chromEntries[0].Start0, chromEntries[0].End
		for _, e := range chromEntries[1:] {
			if e.Start0 > prevEnd {
				endpoints = append(endpoints, prevStart, prevEnd)
				prevStart, prevEnd = e.Start0, e.End
				continue
			}
			if e.End > prevEnd {
				prevEnd = e.End
			}
		}
		regions.byChrom[chrom] = append(endpoints, prevStart, prevEnd)
	}
	return regions, nil
}

// Bases returns the number of bases covered.
func (r *Regions) Bases() int {
	n := 0
	for _, endpoints := range r.byChrom {
		for i := 0; i < len(endpoints); i += 2 {
			n += int(endpoints[i+1] - endpoints[i])
		}
	}
	return n
}

// Contains reports whether the 1-based position pos on chrom lies in a
// region. chrom must already be normalized.
func (r *Regions) Contains(chrom string, pos int) bool {
	endpoints := r.byChrom[chrom]
	if endpoints == nil {
		return false
	}
	return NewEndpointIndex(PosType(pos-1), endpoints).Contained()
}

// Intersects reports whether the 1-based inclusive interval [start, end] on
// chrom shares at least one base with a region.
func (r *Regions) Intersects(chrom string, start, end int) bool {
	endpoints := r.byChrom[chrom]
	if endpoints == nil || end < start {
		return false
	}
	idx := NewEndpointIndex(PosType(start-1), endpoints)
	if idx.Contained() {
		return true
	}
	// idx now refers to the start of the next region, if any.
	return !idx.Finished(endpoints) && endpoints[idx] < PosType(end)
}

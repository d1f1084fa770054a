/*Package interval provides the spatial indexes used to find overlapping
  variant calls, and a region set for restricting a merge to target regions.

  Tree is a per-chromosome collection of half-open [start, end) intervals
  tagged with integer IDs, backed by an augmented interval tree.  It is
  filled once, built, and then only queried, so it can be shared by several
  goroutines.

  BreakendIndex pairs two Trees, one over the low breakend and one over the
  high breakend of each structural variant, padded by a clustering window.
  CNVIndex holds one Tree of copy-number intervals.

  Regions is an interval-union in the spirit of a BED file: overlapping
  intervals are merged, not tracked separately, and membership queries are
  answered by binary search over the sorted interval endpoints.
*/
package interval

/*Package variant defines the canonical representations used when merging
  structural-variant (SV) and copy-number-variant (CNV) calls.

  A breakend is a (chromosome, position, side) triple.  Breakends are totally
  ordered, lexicographically on that tuple, and every SV is stored as an
  ordered pair (Low <= High) so that the same rearrangement reported from
  either end, or by different callers, ends up with the same key.

  Chromosome names are stored with any leading "chr" removed; comparison is
  plain string comparison, so "10" sorts before "2".

  Positions are 1-based throughout this package, matching VCF and the
  distilled TSV rows.
*/
package variant

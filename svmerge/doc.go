// Package svmerge clusters structural-variant and copy-number calls from many
// samples and callers into a non-redundant catalog.
//
// Calls are indexed by position (see package interval), every pair of calls
// that describe the same event is joined by an edge, and each connected
// component of the resulting graph is reduced to one consensus record that
// lists the samples and callers supporting it.
//
// Two breakend calls describe the same event when each end of one lies within
// the window of the corresponding end of the other and both ends have the
// same orientation.  Two CNV calls describe the same event when they have the
// same state and overlap by at least Opts.Overlap of each one's length.
//
// Clustering takes the transitive closure of that relation: if A matches B
// and B matches C, all three end up in one cluster even when A and C are too
// far apart to match directly.  On dense call sets this can merge events that
// a pairwise comparison would keep apart; Stats.LargestCluster is logged so
// such runs stand out.
package svmerge

// bio-svmerge consolidates structural-variant and copy-number calls made per
// sample and per caller into one catalog of events.
//
// Usage:
//
//	bio-svmerge distil [-qual q] [-ispass] calls.vcf... > distilled.tsv
//	bio-svmerge sv [-window w] S1.manta.tsv S2.manta.tsv... > merged.tsv
//	bio-svmerge cnv [-overlap f] S1.cnvkit.tsv S2.cnvkit.tsv... > merged.tsv
package main

import "github.com/grailbio/svdistil/cmd/bio-svmerge/cmd"

func main() {
	cmd.Run()
}

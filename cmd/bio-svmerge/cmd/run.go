package cmd

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svdistil/distil"
	"github.com/grailbio/svdistil/encoding/svtsv"
	"github.com/grailbio/svdistil/interval"
	"github.com/grailbio/svdistil/svmerge"
	"github.com/grailbio/svdistil/variant"
)

// restrict installs the -regions predicates into opts.
func restrict(ctx context.Context, opts *svmerge.Opts, path string) error {
	if path == "" {
		return nil
	}
	regions, err := interval.NewRegionsFromPath(ctx, path)
	if err != nil {
		return err
	}
	opts.KeepSV = func(sv *variant.SV) bool {
		return regions.Contains(sv.Low.Chrom, sv.Low.Pos) && regions.Contains(sv.High.Chrom, sv.High.Pos)
	}
	opts.KeepCNV = func(c *variant.CNV) bool {
		return regions.Intersects(c.Chrom, c.Start, c.End)
	}
	return nil
}

// writeOutput creates path and passes it to write.
func writeOutput(ctx context.Context, path string, write func(*svtsv.Output) error) (err error) {
	out, err := svtsv.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(out)
}

func runDistil(ctx context.Context, opts svmerge.Opts, f *commonFlags, paths []string) error {
	if err := restrict(ctx, &opts, f.regions); err != nil {
		return err
	}
	var (
		all   []variant.SV
		total distil.Stats
	)
	for _, path := range paths {
		svs, stats, err := distil.DistilFile(ctx, path, opts.Gate())
		if err != nil {
			return err
		}
		total.Records += stats.Records
		total.Dropped += stats.Dropped
		total.Interchromosomal += stats.Interchromosomal
		for i := range svs {
			if opts.KeepSV != nil && !opts.KeepSV(&svs[i]) {
				continue
			}
			total.SVs++
			total.Rows += len(svs[i].Samples)
			all = append(all, svs[i])
		}
	}
	log.Printf("distil: %d records, %d dropped by the gate, %d kept, %d rows, %d interchromosomal",
		total.Records, total.Dropped, total.SVs, total.Rows, total.Interchromosomal)
	return writeOutput(ctx, f.out, func(out *svtsv.Output) error {
		return svtsv.WriteBreakends(out, all)
	})
}

func runSV(ctx context.Context, opts svmerge.Opts, f *commonFlags, paths []string) error {
	if err := restrict(ctx, &opts, f.regions); err != nil {
		return err
	}
	var svs []variant.SV
	for _, path := range paths {
		s, err := svtsv.ReadBreakendFile(ctx, path)
		if err != nil {
			return err
		}
		svs = append(svs, s...)
	}
	b, err := svmerge.NewBatch(opts)
	if err != nil {
		return err
	}
	catalog, err := b.MergeSVs(svs, nil)
	if err != nil {
		return err
	}
	return writeOutput(ctx, f.out, func(out *svtsv.Output) error {
		return svtsv.WriteSVCatalog(out, catalog, opts.TrackCallers)
	})
}

func runCNV(ctx context.Context, opts svmerge.Opts, f *commonFlags, paths []string) error {
	if err := restrict(ctx, &opts, f.regions); err != nil {
		return err
	}
	var (
		cnvs  []variant.CNV
		known []string
	)
	for _, path := range paths {
		c, sample, err := svtsv.ReadCNVFile(ctx, path)
		if err != nil {
			return err
		}
		cnvs = append(cnvs, c...)
		if sample != "" {
			known = append(known, sample)
		}
	}
	b, err := svmerge.NewBatch(opts)
	if err != nil {
		return err
	}
	catalog, err := b.MergeCNVs(cnvs, known)
	if err != nil {
		return err
	}
	return writeOutput(ctx, f.out, func(out *svtsv.Output) error {
		return svtsv.WriteCNVCatalog(out, catalog, opts.TrackCallers)
	})
}

package cmd

import (
	"bytes"
	"context"
	"flag"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/svdistil/svmerge"
	"github.com/grailbio/svdistil/variant"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/cmdline"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const breakendHeader = "chr1\tpos1\tchr2\tpos2\tsense1\tsense2\tinsertlen\tqual\tsample\n"

func TestRunSV(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "S1.manta.tsv", breakendHeader+"chr1\t100\tchr1\t500\tR\tL\t0\t.\tS1\n"),
		writeFile(t, tmpdir, "S2.manta.tsv", breakendHeader+"chr1\t110\tchr1\t510\tR\tL\t0\t.\tS2\n"),
		writeFile(t, tmpdir, "S3.manta.tsv", breakendHeader),
	}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	require.NoError(t, runSV(context.Background(), svmerge.DefaultOpts, f, paths))
	assert.Equal(t,
		"chr1\tpos1\tchr2\tpos2\tsense1\tsense2\tqual\tnum_samples\tsamples\n"+
			"1\t110\t1\t510\tR\tL\t.\t2\tS1;S2\n",
		readFile(t, f.out))

	f.callers = true
	opts := svmerge.DefaultOpts
	opts.TrackCallers = true
	require.NoError(t, runSV(context.Background(), opts, f, paths))
	assert.Equal(t,
		"chr1\tpos1\tchr2\tpos2\tnum_samples\tavg_pos_calls\tS1\tS1:manta\tS2\tS2:manta\n"+
			"1\t110\t1\t510\t2\t1\t1\t1\t1\t1\n",
		readFile(t, f.out))
}

func TestRunSVSamplesFromRows(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "cohort_distilled.tsv", breakendHeader+
			"chr1\t100\tchr1\t500\tR\tL\t0\t.\tS1\n"+
			"chr1\t110\tchr1\t510\tR\tL\t0\t.\tS2\n"),
	}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	opts := svmerge.DefaultOpts
	opts.TrackCallers = true
	require.NoError(t, runSV(context.Background(), opts, f, paths))
	assert.Equal(t,
		"chr1\tpos1\tchr2\tpos2\tnum_samples\tavg_pos_calls\tS1\tS2\n"+
			"1\t110\t1\t510\t2\t1\t1\t1\n",
		readFile(t, f.out))
}

func TestRunSVRegions(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "S1.tsv", breakendHeader+
			"chr1\t100\tchr1\t500\tR\tL\t0\t.\tS1\n"+
			"chr1\t5000\tchr1\t6000\tR\tL\t0\t.\tS1\n"),
	}
	f := &commonFlags{
		out:     filepath.Join(tmpdir, "out.tsv"),
		regions: writeFile(t, tmpdir, "regions.bed", "chr1\t0\t1000\n"),
	}
	require.NoError(t, runSV(context.Background(), svmerge.DefaultOpts, f, paths))
	assert.Equal(t,
		"chr1\tpos1\tchr2\tpos2\tsense1\tsense2\tqual\tnum_samples\tsamples\n"+
			"1\t100\t1\t500\tR\tL\t.\t1\tS1\n",
		readFile(t, f.out))
}

const cnvHeader = "chr\tstart\tend\tstate\tmedian\n"

func TestRunCNV(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "A.cnvkit.tsv", cnvHeader+"chr2\t1000\t2000\tloss\t-0.5\n"),
		writeFile(t, tmpdir, "B.cnvkit.tsv", cnvHeader+"chr2\t1200\t2100\tloss\t-0.25\n"),
	}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	require.NoError(t, runCNV(context.Background(), svmerge.DefaultOpts, f, paths))
	assert.Equal(t,
		"chr\tstart\tend\tstate\tmedian\tnum_pos_samples\tA\tB\n"+
			"2\t1200\t2100\tloss\t-0.375\t2\t1\t1\n",
		readFile(t, f.out))

	opts := svmerge.DefaultOpts
	opts.Overlap = 0.9
	require.NoError(t, runCNV(context.Background(), opts, f, paths))
	assert.Equal(t,
		"chr\tstart\tend\tstate\tmedian\tnum_pos_samples\tA\tB\n"+
			"2\t1000\t2000\tloss\t-0.5\t1\t1\t0\n"+
			"2\t1200\t2100\tloss\t-0.25\t1\t0\t1\n",
		readFile(t, f.out))
}

func TestRunCNVSamples(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "batch1.tsv", "chr\tstart\tend\tstate\tmedian\tsample\n"+
			"chr2\t1000\t2000\tloss\t-0.5\tS1\n"),
		// No calls, but the file names its sample.
		writeFile(t, tmpdir, "S2.cnvkit.tsv", cnvHeader),
	}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	require.NoError(t, runCNV(context.Background(), svmerge.DefaultOpts, f, paths))
	assert.Equal(t,
		"chr\tstart\tend\tstate\tmedian\tnum_pos_samples\tS1\tS2\n"+
			"2\t1000\t2000\tloss\t-0.5\t1\t1\t0\n",
		readFile(t, f.out))
}

func TestRunSVRejectsBadPosition(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{
		writeFile(t, tmpdir, "S1.tsv", breakendHeader+"chr1\t-100\tchr1\t500\tR\tL\t0\t30\tS1\n"),
	}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	err := runSV(context.Background(), svmerge.DefaultOpts, f, paths)
	require.Error(t, err)
	assert.True(t, variant.IsKind(err, variant.MalformedField), "%v", err)
	assert.Equal(t, cmdline.ErrExitCode(exitContentError), fail(&cmdline.Env{Stderr: &bytes.Buffer{}}, err))
}

const testVCF = `##fileformat=VCFv4.2
##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of structural variant">
##INFO=<ID=END,Number=1,Type=Integer,Description="End position">
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1	S2
chr1	500	bnd1	A	]chr1:100]A	30	PASS	SVTYPE=BND	GT	0/1	1/1
chr2	1000	del1	N	<DEL>	5	PASS	SVTYPE=DEL;END=2000	GT	0/1	0/0
`

func TestRunDistil(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	paths := []string{writeFile(t, tmpdir, "calls.vcf", testVCF)}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}
	opts := svmerge.DefaultOpts
	q := 10.0
	opts.MinQual = &q
	require.NoError(t, runDistil(context.Background(), opts, f, paths))
	assert.Equal(t,
		breakendHeader+
			"1\t100\t1\t500\tR\tL\t0\t30\tS1\n"+
			"1\t100\t1\t500\tR\tL\t0\t30\tS2\n",
		readFile(t, f.out))
}

func TestExitStatus(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	var stderr bytes.Buffer
	env := &cmdline.Env{Stderr: &stderr}
	f := &commonFlags{out: filepath.Join(tmpdir, "out.tsv")}

	bad := writeFile(t, tmpdir, "A.tsv", "chr\tstart\tend\tstate\n2\t1\t10\tloss\n")
	err := runCNV(context.Background(), svmerge.DefaultOpts, f, []string{bad})
	require.Error(t, err)
	assert.True(t, variant.IsKind(err, variant.MissingRequiredColumn))
	assert.Equal(t, cmdline.ErrExitCode(exitContentError), fail(env, err))
	assert.Contains(t, stderr.String(), "bio-svmerge ERROR: ")
	assert.Contains(t, stderr.String(), ", exiting\n")

	err = runCNV(context.Background(), svmerge.DefaultOpts, f, []string{filepath.Join(tmpdir, "missing.tsv")})
	require.Error(t, err)
	assert.False(t, variant.IsContentError(err))
	assert.Equal(t, cmdline.ErrExitCode(exitIOError), fail(env, err))

	assert.Equal(t, cmdline.ErrUsage, fail(env, cmdline.ErrUsage))
	assert.NoError(t, fail(env, nil))
}

func TestOpts(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	config := writeFile(t, tmpdir, "config.yaml", "window: 10\nsort: false\nstrict: true\n")
	env := &cmdline.Env{Stderr: &bytes.Buffer{}}

	fs := flag.NewFlagSet("sv", flag.ContinueOnError)
	f := addCommonFlags(fs)
	window := fs.Int("window", svmerge.DefaultOpts.Window, "")
	require.NoError(t, fs.Parse([]string{"-config", config, "-sort", "-parallelism", "3"}))
	apply := func(name string, o *svmerge.Opts) {
		if name == "window" {
			o.Window = *window
		}
	}
	opts, err := f.opts(env, fs, apply)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Window)
	assert.True(t, opts.Sort)
	assert.True(t, opts.StrictRepresentative)
	assert.Equal(t, 3, opts.Parallelism)
	assert.Equal(t, svmerge.DefaultOpts.Overlap, opts.Overlap)

	fs = flag.NewFlagSet("sv", flag.ContinueOnError)
	f = addCommonFlags(fs)
	window = fs.Int("window", svmerge.DefaultOpts.Window, "")
	require.NoError(t, fs.Parse([]string{"-config", config, "-window", "0"}))
	_, err = f.opts(env, fs, apply)
	assert.Equal(t, cmdline.ErrUsage, err)

	// An unreadable config file is an I/O error, not a usage error.
	fs = flag.NewFlagSet("sv", flag.ContinueOnError)
	f = addCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", filepath.Join(tmpdir, "missing.yaml")}))
	_, err = f.opts(env, fs, nil)
	require.Error(t, err)
	assert.NotEqual(t, cmdline.ErrUsage, err)
	assert.Equal(t, cmdline.ErrExitCode(exitIOError), fail(env, err))

	garbled := writeFile(t, tmpdir, "garbled.yaml", "window: [1\n")
	fs = flag.NewFlagSet("sv", flag.ContinueOnError)
	f = addCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", garbled}))
	_, err = f.opts(env, fs, nil)
	assert.Equal(t, cmdline.ErrUsage, err)
}

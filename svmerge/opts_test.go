package svmerge

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		modify func(*Opts)
		ok     bool
	}{
		{func(*Opts) {}, true},
		{func(o *Opts) { o.Window = 1 }, true},
		{func(o *Opts) { o.Window = 0 }, false},
		{func(o *Opts) { o.Overlap = 1 }, true},
		{func(o *Opts) { o.Overlap = 1.01 }, false},
		{func(o *Opts) { o.Overlap = -0.1 }, false},
		{func(o *Opts) { o.Parallelism = -1 }, false},
		{func(o *Opts) { o.CNVSpan = SpanUnion }, true},
		{func(o *Opts) { o.CNVSpan = "widest" }, false},
	}
	for i, tt := range tests {
		opts := DefaultOpts
		tt.modify(&opts)
		err := opts.Validate()
		if tt.ok {
			assert.NoError(t, err, "case %d", i)
		} else {
			assert.Error(t, err, "case %d", i)
		}
	}
	_, err := NewBatch(Opts{})
	assert.Error(t, err)
}

func TestLoadOpts(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := filepath.Join(tmpdir, "opts.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("window: 100\nqual: 20\nispass: true\ncnv-span: union\n"), 0644))
	opts, err := LoadOpts(ctx, path, DefaultOpts)
	require.NoError(t, err)
	assert.Equal(t, 100, opts.Window)
	assert.Equal(t, 0.75, opts.Overlap)
	require.NotNil(t, opts.MinQual)
	assert.Equal(t, 20.0, *opts.MinQual)
	assert.True(t, opts.PassOnly)
	assert.Equal(t, SpanUnion, opts.CNVSpan)
	gate := opts.Gate()
	assert.True(t, gate.PassOnly)

	bad := filepath.Join(tmpdir, "bad.yaml")
	require.NoError(t, ioutil.WriteFile(bad, []byte("overlap: 2\n"), 0644))
	_, err = LoadOpts(ctx, bad, DefaultOpts)
	require.Error(t, err)
	_, ok := err.(*ConfigError)
	assert.True(t, ok, "%v", err)

	garbled := filepath.Join(tmpdir, "garbled.yaml")
	require.NoError(t, ioutil.WriteFile(garbled, []byte("window: [1\n"), 0644))
	_, err = LoadOpts(ctx, garbled, DefaultOpts)
	require.Error(t, err)
	_, ok = err.(*ConfigError)
	assert.True(t, ok, "%v", err)

	_, err = LoadOpts(ctx, filepath.Join(tmpdir, "missing.yaml"), DefaultOpts)
	require.Error(t, err)
	_, ok = err.(*ConfigError)
	assert.False(t, ok, "%v", err)
}

func TestStatsMerge(t *testing.T) {
	a := Stats{Variants: 3, Edges: 1, LargestCluster: 2}
	b := Stats{Variants: 4, Candidates: 9, LargestCluster: 5, Disagreements: 1}
	m := a.Merge(b)
	assert.Equal(t, Stats{Variants: 7, Edges: 1, Candidates: 9, LargestCluster: 5, Disagreements: 1}, m)
}

func TestBatchID(t *testing.T) {
	a, err := NewBatch(DefaultOpts)
	require.NoError(t, err)
	b, err := NewBatch(DefaultOpts)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
}

package variant

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestParseBNDAlt(t *testing.T) {
	tests := []struct {
		alt  string
		want BNDAlt
	}{
		{"G[chr17:198982[", BNDAlt{"G", "17", 198982, Right, Left}},
		{"G]17:198982]", BNDAlt{"G", "17", 198982, Right, Right}},
		{"]13:123456]T", BNDAlt{"T", "13", 123456, Left, Right}},
		{"[chr13:123456[C", BNDAlt{"C", "13", 123456, Left, Left}},
		{"ACGT[2:10[", BNDAlt{"ACGT", "2", 10, Right, Left}},
		{"A]HLA-A*01:01:42]", BNDAlt{"A", "HLA-A*01:01", 42, Right, Right}},
	}
	for _, tt := range tests {
		got, err := ParseBNDAlt([]string{tt.alt})
		assert.NoError(t, err, tt.alt)
		expect.EQ(t, got, tt.want, tt.alt)
	}
}

func TestParseBNDAltInsertLen(t *testing.T) {
	alt, err := ParseBNDAlt([]string{"ACGT[2:10["})
	assert.NoError(t, err)
	expect.EQ(t, alt.InsertLen(), 3)
	alt, err = ParseBNDAlt([]string{"]2:10]T"})
	assert.NoError(t, err)
	expect.EQ(t, alt.InsertLen(), 0)
}

func TestParseBNDAltErrors(t *testing.T) {
	tests := []struct {
		alts []string
		kind ErrorKind
	}{
		{nil, MalformedAlt},
		{[]string{"G[1:5[", "G]1:5]"}, MalformedAlt},
		{[]string{"<DEL>"}, MalformedAlt},
		{[]string{"G[1:5]"}, MalformedAlt},
		{[]string{"G[1:abc["}, MalformedAlt},
		{[]string{"[1:5[G[2:6["}, MalformedAlt},
		{[]string{"G[chr:5["}, EmptyChromosomeName},
	}
	for _, tt := range tests {
		_, err := ParseBNDAlt(tt.alts)
		expect.True(t, IsKind(err, tt.kind), "%v: %v", tt.alts, err)
	}
}

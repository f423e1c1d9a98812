package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		kind IncrementKind
		want string
	}{
		{
			name: "patch bump on latest tag",
			tags: []string{"1.0.0", "1.1.0", "2.0.0"},
			kind: Patch,
			want: "2.0.1",
		},
		{
			name: "minor bump resets patch",
			tags: []string{"1.0.0", "1.1.0", "2.0.0"},
			kind: Minor,
			want: "2.1.0",
		},
		{
			name: "major bump resets minor and patch",
			tags: []string{"1.0.0", "1.1.0", "2.0.0"},
			kind: Major,
			want: "3.0.0",
		},
		{
			name: "minor bump keeps major and resets patch",
			tags: []string{"1.2.9"},
			kind: Minor,
			want: "1.3.0",
		},
		{
			name: "empty tag set yields the baseline itself",
			tags: nil,
			kind: Major,
			want: "1.0.0",
		},
		{
			name: "unparsable tags are discarded",
			tags: []string{"latest", "", "not-a-version"},
			kind: Patch,
			want: "1.0.0",
		},
		{
			name: "unparsable tags do not affect the maximum",
			tags: []string{"latest", "1.4.2", "v9.9.9-not-strict-enough?", ""},
			kind: Patch,
			want: "1.4.3",
		},
		{
			name: "ordering is numeric, not lexicographic",
			tags: []string{"1.9.0", "1.10.0"},
			kind: Patch,
			want: "1.10.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextVersion(tt.tags, tt.kind)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseIncrementKind(t *testing.T) {
	kind, err := ParseIncrementKind("Major")
	require.NoError(t, err)
	assert.Equal(t, Major, kind)

	kind, err = ParseIncrementKind("minor")
	require.NoError(t, err)
	assert.Equal(t, Minor, kind)

	kind, err = ParseIncrementKind("PATCH")
	require.NoError(t, err)
	assert.Equal(t, Patch, kind)

	_, err = ParseIncrementKind("biggest")
	require.Error(t, err)
}

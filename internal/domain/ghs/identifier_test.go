package ghs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIdentifiers(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []SubstanceKey
	}{
		{"single", "50-00-0", []SubstanceKey{"50-00-0"}},
		{"fan out", "123-45-6, 789-01-2", []SubstanceKey{"123-45-6", "789-01-2"}},
		{"surrounding dashes", "- 64-17-5 -", []SubstanceKey{"64-17-5"}},
		{"unicode dash", "－", nil},
		{"lone hyphen", "-", nil},
		{"blank", "   ", nil},
		{"empty tokens dropped", "7440-02-0,, -", []SubstanceKey{"7440-02-0"}},
		{"duplicates kept", "1-1-1, 1-1-1", []SubstanceKey{"1-1-1", "1-1-1"}},
		{"semicolon is not a delimiter", "1-1-1; 2-2-2", []SubstanceKey{"1-1-1; 2-2-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitIdentifiers(tc.raw))
		})
	}
}

func TestNormalize_Fallback(t *testing.T) {
	assert.Equal(t, []SubstanceKey{"1424"}, Normalize("-", " 1424 "))
	assert.Equal(t, []SubstanceKey{"71-43-2"}, Normalize("71-43-2", "1424"))
	assert.Nil(t, Normalize("", "  "))
}

func TestNormalizer_PlaceholdersAreUnique(t *testing.T) {
	n := NewNormalizer()

	a := n.Keys("", "")
	b := n.Keys("-", "")
	c := n.Keys("50-00-0", "")

	assert.Equal(t, []SubstanceKey{"no_id_1"}, a)
	assert.Equal(t, []SubstanceKey{"no_id_2"}, b)
	assert.Equal(t, []SubstanceKey{"50-00-0"}, c)
	assert.NotEqual(t, a, b)
	assert.True(t, a[0].IsPlaceholder())
	assert.False(t, c[0].IsPlaceholder())
	assert.Equal(t, 2, n.Minted())
}

package ghs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/reference"
)

func newKoreanDisambiguator() *Disambiguator {
	return NewDisambiguator(reference.Default(), KoreanRules())
}

func TestResolve_PlainCode(t *testing.T) {
	d := newKoreanDisambiguator()

	res, err := d.Resolve("2.6", "인화성 액체(2.6)")
	require.NoError(t, err)
	assert.Equal(t, "Flammable liquids", res.Category)
	assert.False(t, res.Overloaded)
	assert.True(t, res.Resolved())
}

func TestResolve_Sensitization(t *testing.T) {
	d := newKoreanDisambiguator()

	res, err := d.Resolve("3.4", "피부 과민성(3.4)")
	require.NoError(t, err)
	assert.Equal(t, "Skin sensitization", res.Category)
	assert.True(t, res.Overloaded)

	res, err = d.Resolve("3.4", "호흡기 과민성(3.4)")
	require.NoError(t, err)
	assert.Equal(t, "Respiratory sensitization", res.Category)
}

func TestResolve_UnrecognizedVariant(t *testing.T) {
	d := newKoreanDisambiguator()

	res, err := d.Resolve("3.4", "과민성(3.4)")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnrecognizedVariant))
	assert.False(t, errors.IsFatal(err))
	assert.Equal(t, "", res.Category)
	assert.Equal(t, "Respiratory or skin sensitization", res.Chapter)
	assert.False(t, res.Resolved())
}

func TestResolve_RouteAndAquatic(t *testing.T) {
	d := newKoreanDisambiguator()

	cases := map[string]struct{ code, text string }{
		"Acute toxicity (oral)":                          {"3.1", "급성 독성-경구(3.1)"},
		"Acute toxicity (dermal)":                        {"3.1", "급성 독성-경피(3.1)"},
		"Acute toxicity (inhalation)":                    {"3.1", "급성 독성-흡입(3.1)"},
		"Hazardous to the aquatic environment (acute)":   {"4.1", "수생환경유해성-급성(4.1)"},
		"Hazardous to the aquatic environment (chronic)": {"4.1", "수생환경유해성-만성(4.1)"},
	}
	for want, in := range cases {
		res, err := d.Resolve(in.code, in.text)
		require.NoError(t, err, want)
		assert.Equal(t, want, res.Category)
	}
}

func TestResolve_FirstMatchingRuleWins(t *testing.T) {
	d := NewDisambiguator(reference.Default(), map[string][]Rule{
		"3.4": {{Keyword: "skin", Category: "Skin"}, {Keyword: "resp", Category: "Resp"}},
	})
	res, err := d.Resolve("3.4", "resp and skin")
	require.NoError(t, err)
	assert.Equal(t, "Skin", res.Category)
}

func TestResolve_ChapterMissIsFatal(t *testing.T) {
	d := newKoreanDisambiguator()
	_, err := d.Resolve("5.1", "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeReferenceLookupMiss))
	assert.True(t, errors.IsFatal(err))
}

func TestResolve_SubstituteTables(t *testing.T) {
	tables := reference.New(map[string]string{"X": "Custom"}, nil, nil)
	d := NewDisambiguator(tables, nil)
	res, err := d.Resolve("X", "")
	require.NoError(t, err)
	assert.Equal(t, "Custom", res.Category)
	assert.False(t, d.Overloaded("X"))
}

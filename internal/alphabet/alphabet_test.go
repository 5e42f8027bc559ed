package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDropsDuplicates(t *testing.T) {
	a := New("कखकगख")
	assert.Equal(t, []rune("कखग"), a.Runes())
	assert.Equal(t, 3, a.Len())
	assert.True(t, a.Contains('ग'))
	assert.False(t, a.Contains('घ'))
}

func TestRunesReturnsCopy(t *testing.T) {
	a := New("कख")
	r := a.Runes()
	r[0] = 'x'
	assert.Equal(t, []rune("कख"), a.Runes())
}

func TestDevanagariMarks(t *testing.T) {
	for _, r := range "ािीुूृेैोौँंः़्" {
		assert.Truef(t, Devanagari.Contains(r), "missing mark %q", r)
	}
	for _, r := range "।॥०९a " {
		assert.Falsef(t, Devanagari.Contains(r), "unexpected rune %q", r)
	}
}

func TestEachOrder(t *testing.T) {
	var got []rune
	New("अआइ").Each(func(r rune) { got = append(got, r) })
	require.Len(t, got, 3)
	assert.Equal(t, []rune("अआइ"), got)
}

func TestIsScriptRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"consonant", 'क', true},
		{"vowel sign", 'ू', true},
		{"virama", '्', true},
		{"precomposed nukta letter", 'क़', true},
		{"danda", '।', false},
		{"double danda", '॥', false},
		{"devanagari digit", '५', false},
		{"abbreviation sign", '॰', false},
		{"latin", 'a', false},
		{"space", ' ', false},
		{"ascii digit", '7', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsScriptRune(tt.r))
		})
	}
}
func TestDevanagariSize(t *testing.T) { assert.Equal(t, 60, Devanagari.Len()) }

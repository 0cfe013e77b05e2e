package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidPattern(t *testing.T) {
	re, err := Compile(`fo+`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("foo"))
}

func TestCompileInvalidPatternWrapsError(t *testing.T) {
	_, err := Compile(`(unterminated`)
	assert.Error(t, err)
}

func TestCompileServesFromCache(t *testing.T) {
	first, err := Compile(`ba[rz]`)
	require.NoError(t, err)

	second, err := Compile(`ba[rz]`)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

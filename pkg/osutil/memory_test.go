package osutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCgroupMemoryLimit(t *testing.T) {
	for contents, expected := range map[string]uint64{
		"536870912\n": 536870912,
		"1073741824":  1073741824,
	} {
		actual, ok := parseCgroupMemoryLimit(contents)
		assert.True(t, ok, contents)
		assert.Equal(t, expected, actual)
	}

	for _, contents := range []string{
		"max\n",
		"9223372036854771712\n",
		"0",
		"",
		"garbage",
	} {
		_, ok := parseCgroupMemoryLimit(contents)
		assert.False(t, ok, contents)
	}
}

func TestGetTotalMemory(t *testing.T) {
	assert.NotZero(t, GetTotalMemory())
}

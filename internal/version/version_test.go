package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOlder(t *testing.T) {
	for _, p := range []struct {
		a, b  string
		older bool
	}{
		{"1.2.0", "1.10.0", true},
		{"1.10.0", "1.2.0", false},
		{"1.0", "1.0", false},
		{"9", "10", true},
		{"1.0", "1.0.1", true},
		{"1.0.0", "1.0", false},
		{"1.0", "1.0.0", false},
		{"2", "1.9.9", false},
		{"", "1.0", false},
		{"1.0", "", false},
		{"", "", false},
		{"1.2.beta", "1.2.1", false},
		{"1.2.alpha", "1.2.beta", true},
	} {
		t.Run(fmt.Sprintf("%q < %q", p.a, p.b), func(t *testing.T) {
			assert.Equal(t, p.older, IsOlder(p.a, p.b))

			c := NewComparator(0)
			defer c.Close()
			assert.Equal(t, p.older, c.IsOlder(p.a, p.b))
			assert.Equal(t, p.older, c.IsOlder(p.a, p.b), "second call should use cached parse")
		})
	}
}

func TestCompare(t *testing.T) {
	c := NewComparator(10)
	defer c.Close()

	assert.Equal(t, -1, c.Compare("1.2", "1.10"))
	assert.Equal(t, 0, c.Compare("3.0.0", "3"))
	assert.Equal(t, 1, c.Compare("10.0", "9.9"))
}

func TestComparatorWorksAfterClose(t *testing.T) {
	c := NewComparator(10)
	c.Close()
	assert.True(t, c.IsOlder("1.0", "2.0"))
}

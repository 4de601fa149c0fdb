// Package version compares dotted numeric version strings such as "1.10.2".
package version

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/launchdarkly/ccache"
)

const (
	defaultParseCacheSize = 500
	parseCacheTTL         = time.Hour
)

// Comparator compares version strings, caching the parsed form of each string it sees. The same
// few versions (the app version, the OS version, and the minimums from update rules) are compared
// repeatedly, so the cache stays small.
type Comparator struct {
	cache *ccache.Cache
	lock  sync.RWMutex
}

// NewComparator creates a Comparator whose parse cache holds at most maxEntries strings. A
// non-positive maxEntries selects the default size.
func NewComparator(maxEntries int) *Comparator {
	if maxEntries <= 0 {
		maxEntries = defaultParseCacheSize
	}
	return &Comparator{cache: ccache.New(ccache.Configure().MaxSize(int64(maxEntries)))}
}

// IsOlder returns true if version a is strictly lower than version b. It returns false if either
// string is empty.
func (c *Comparator) IsOlder(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return compareSegments(c.parse(a), c.parse(b)) < 0
}

// Compare returns -1, 0 or 1 as version a is lower than, equal to, or higher than version b.
func (c *Comparator) Compare(a, b string) int {
	return compareSegments(c.parse(a), c.parse(b))
}

// Close stops the cache's background worker. The Comparator still works afterward, without caching.
func (c *Comparator) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.cache != nil {
		c.cache.Stop()
		c.cache = nil
	}
}

// A stopped ccache.Cache can panic on use, so it is nilled out on Close and guarded by the lock.
func (c *Comparator) parse(v string) []segment {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.cache == nil {
		return parse(v)
	}
	item, err := c.cache.Fetch(v, parseCacheTTL, func() (interface{}, error) {
		return parse(v), nil
	})
	if err == nil && item != nil {
		if segs, ok := item.Value().([]segment); ok {
			return segs
		}
	}
	return parse(v)
}

// IsOlder compares without caching. See Comparator.IsOlder.
func IsOlder(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return compareSegments(parse(a), parse(b)) < 0
}

// segment is one dot-separated component. Numeric components compare as integers; anything else
// compares as text, and sorts after any numeric component.
type segment struct {
	text    string
	number  uint64
	numeric bool
}

func parse(v string) []segment {
	parts := strings.Split(strings.TrimSpace(v), ".")
	ret := make([]segment, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.ParseUint(p, 10, 64); err == nil {
			ret = append(ret, segment{text: p, number: n, numeric: true})
		} else {
			ret = append(ret, segment{text: p})
		}
	}
	return ret
}

var zeroSegment = segment{text: "0", numeric: true}

func compareSegments(a, b []segment) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sa, sb := zeroSegment, zeroSegment
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		if c := compareSegment(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

func compareSegment(a, b segment) int {
	switch {
	case a.numeric && b.numeric:
		switch {
		case a.number < b.number:
			return -1
		case a.number > b.number:
			return 1
		}
		return 0
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

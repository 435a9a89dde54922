package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy_FirstSeenOrder(t *testing.T) {
	items := []string{"banana", "apple", "blueberry", "cherry", "avocado"}

	groups := groupBy(items, func(s string) byte { return s[0] })

	require.Len(t, groups, 3)
	assert.Equal(t, byte('b'), groups[0].Key)
	assert.Equal(t, []string{"banana", "blueberry"}, groups[0].Items)
	assert.Equal(t, byte('a'), groups[1].Key)
	assert.Equal(t, []string{"apple", "avocado"}, groups[1].Items)
	assert.Equal(t, byte('c'), groups[2].Key)
	assert.Equal(t, []string{"cherry"}, groups[2].Items)
}

func TestGroupBy_ConservesItems(t *testing.T) {
	items := []int{5, 3, 5, 1, 3, 5, 2}

	groups := groupBy(items, func(i int) int { return i })

	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	assert.Equal(t, len(items), total)
}

func TestGroupBy_Empty(t *testing.T) {
	groups := groupBy(nil, func(i int) int { return i })
	assert.Empty(t, groups)
}

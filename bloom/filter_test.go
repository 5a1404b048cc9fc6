package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/localmind/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndMaybeContains(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.MaybeContains("9f86d081884c7d65"))

	f.Add("9f86d081884c7d65")

	assert.True(t, f.MaybeContains("9f86d081884c7d65"))
	assert.False(t, f.MaybeContains("60303ae22b998861"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("a1")
	f.Add("b2")
	f.Add("c3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_Reset(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(100, 0.01)
	f.Add("deleted")

	f.Reset([]string{"kept1", "kept2"})

	assert.False(t, f.MaybeContains("deleted"))
	assert.True(t, f.MaybeContains("kept1"))
	assert.True(t, f.MaybeContains("kept2"))
}

func TestFilter_ResetGrowsForLargeInput(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10, 0.01)
	hashes := make([]string, 1000)
	for i := range hashes {
		hashes[i] = fmt.Sprintf("hash-%d", i)
	}

	f.Reset(hashes)

	for _, h := range hashes {
		assert.True(t, f.MaybeContains(h))
	}
}

func TestFilter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := fmt.Sprintf("h%d", i)
			f.Add(h)
			assert.True(t, f.MaybeContains(h))
		}(i)
	}
	wg.Wait()
}

package tfidf_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(contents ...string) []*localmind.Document {
	out := make([]*localmind.Document, len(contents))
	for i, c := range contents {
		out[i] = &localmind.Document{ID: fmt.Sprintf("d%d", i), Title: "t", Content: c}
	}
	return out
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("empty index returns no hits", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()

		assert.Empty(t, idx.Search("anything", 10))
		assert.Zero(t, idx.Len())
		assert.Zero(t, idx.VocabularySize())
	})

	t.Run("ranks the most relevant document first", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs(
			"Hard hats and safety glasses are required PPE.",
			"Concrete compressive strength 3000 PSI. Concrete slump test for each truck.",
			"Main switchboard 2000A emergency generator.",
		))

		hits := idx.Search("concrete strength", 10)

		require.Len(t, hits, 1)
		assert.Equal(t, "d1", hits[0].DocumentID)
		assert.Greater(t, hits[0].Score, 0.0)
		assert.LessOrEqual(t, hits[0].Score, 1.0)
	})

	t.Run("excludes zero-score documents", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("alpha beta", "gamma delta"))

		hits := idx.Search("unrelated words", 10)

		assert.Empty(t, hits)
	})

	t.Run("limits number of hits", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("shared one", "shared two", "shared three"))

		hits := idx.Search("shared", 2)

		assert.Len(t, hits, 2)
	})

	t.Run("equal scores keep corpus order", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("shared text", "shared text", "shared text"))

		hits := idx.Search("shared", 10)

		require.Len(t, hits, 3)
		assert.Equal(t, "d0", hits[0].DocumentID)
		assert.Equal(t, "d1", hits[1].DocumentID)
		assert.Equal(t, "d2", hits[2].DocumentID)
	})

	t.Run("identical query and document score one", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("electrical panel layout", "concrete mix design"))

		hits := idx.Search("electrical panel layout", 1)

		require.Len(t, hits, 1)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	})

	t.Run("matches smoothed idf cosine", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("apple banana", "apple cherry"))

		hits := idx.Search("banana", 10)

		// n=2; idf(apple)=1, idf(banana)=ln(3/2)+1.
		idfBanana := math.Log(1.5) + 1
		want := idfBanana / math.Sqrt(1+idfBanana*idfBanana)
		require.Len(t, hits, 1)
		assert.Equal(t, "d0", hits[0].DocumentID)
		assert.InDelta(t, want, hits[0].Score, 1e-9)
	})

	t.Run("non-positive n returns nothing", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("term"))

		assert.Empty(t, idx.Search("term", 0))
	})
}

func TestIndex_Rebuild(t *testing.T) {
	t.Parallel()

	t.Run("replaces previous corpus", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("old words"))
		idx.Rebuild(docs("new terms", "more terms"))

		assert.Empty(t, idx.Search("old", 10))
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, 3, idx.VocabularySize())
	})

	t.Run("limits vocabulary to most frequent terms", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex(tfidf.WithMaxFeatures(2))
		idx.Rebuild(docs("common common rare", "common frequent frequent zzz"))

		assert.Equal(t, 2, idx.VocabularySize())
		assert.NotEmpty(t, idx.Search("frequent", 10))
		assert.Empty(t, idx.Search("rare", 10))
	})

	t.Run("rebuild with no documents empties index", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("something"))
		idx.Rebuild(nil)

		assert.Zero(t, idx.Len())
		assert.Empty(t, idx.Search("something", 10))
	})

	t.Run("concurrent search during rebuild", func(t *testing.T) {
		t.Parallel()

		idx := tfidf.NewIndex()
		idx.Rebuild(docs("steady state"))

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				idx.Rebuild(docs("steady state", "another doc"))
			}()
			go func() {
				defer wg.Done()
				_ = idx.Search("steady", 5)
			}()
		}
		wg.Wait()

		assert.Equal(t, 2, idx.Len())
	})
}

// Package tfidf provides an in-memory TF-IDF index ranked by cosine similarity.
package tfidf

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/fwojciec/localmind"
)

// DefaultMaxFeatures bounds the vocabulary size.
const DefaultMaxFeatures = 1000

var _ localmind.Index = (*Index)(nil)

// Index implements localmind.Index. Rebuild swaps in a new corpus
// atomically; Search may be called concurrently.
type Index struct {
	maxFeatures int

	mu    sync.RWMutex
	state *state
}

type state struct {
	vocab map[string]int
	idf   []float64
	ids   []string
	rows  []vector
}

// vector is a sparse L2-normalized row keyed by vocabulary column.
type vector map[int]float64

// Option configures an Index.
type Option func(*Index)

// WithMaxFeatures limits the vocabulary to the n most frequent terms.
func WithMaxFeatures(n int) Option {
	return func(i *Index) {
		i.maxFeatures = n
	}
}

// NewIndex returns an empty index.
func NewIndex(opts ...Option) *Index {
	idx := &Index{maxFeatures: DefaultMaxFeatures, state: &state{}}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Rebuild fits the vocabulary and weights to docs, replacing the previous corpus.
func (i *Index) Rebuild(docs []*localmind.Document) {
	next := fit(docs, i.maxFeatures)

	i.mu.Lock()
	i.state = next
	i.mu.Unlock()
}

// Search scores every document against query and returns at most n hits
// with a positive score, best first. Equal scores keep corpus order.
func (i *Index) Search(query string, n int) []localmind.IndexHit {
	i.mu.RLock()
	s := i.state
	i.mu.RUnlock()

	if n <= 0 || len(s.rows) == 0 {
		return nil
	}

	q := s.transform(Tokenize(query))
	if len(q) == 0 {
		return nil
	}

	var hits []localmind.IndexHit
	for row, vec := range s.rows {
		score := dot(q, vec)
		if score > 0 {
			hits = append(hits, localmind.IndexHit{DocumentID: s.ids[row], Score: score})
		}
	}

	slices.SortStableFunc(hits, func(a, b localmind.IndexHit) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}

// VocabularySize returns the number of terms in the fitted vocabulary.
func (i *Index) VocabularySize() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.state.vocab)
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.state.rows)
}

func fit(docs []*localmind.Document, maxFeatures int) *state {
	s := &state{vocab: map[string]int{}}
	if len(docs) == 0 {
		return s
	}

	tokens := make([][]string, len(docs))
	corpusFreq := map[string]int{}
	for d, doc := range docs {
		tokens[d] = Tokenize(doc.Content)
		for _, t := range tokens[d] {
			corpusFreq[t]++
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for t := range corpusFreq {
		terms = append(terms, t)
	}
	slices.SortFunc(terms, func(a, b string) int {
		if c := cmp.Compare(corpusFreq[b], corpusFreq[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	slices.Sort(terms)
	for col, t := range terms {
		s.vocab[t] = col
	}

	counts := make([]map[int]int, len(docs))
	df := make([]int, len(terms))
	for d := range docs {
		counts[d] = s.count(tokens[d])
		for col := range counts[d] {
			df[col]++
		}
	}

	n := float64(len(docs))
	s.idf = make([]float64, len(terms))
	for col := range terms {
		s.idf[col] = math.Log((1+n)/(1+float64(df[col]))) + 1
	}

	s.ids = make([]string, len(docs))
	s.rows = make([]vector, len(docs))
	for d, doc := range docs {
		s.ids[d] = doc.ID
		s.rows[d] = s.weigh(counts[d])
	}
	return s
}

// transform maps query tokens onto the fitted vocabulary.
func (s *state) transform(tokens []string) vector {
	return s.weigh(s.count(tokens))
}

func (s *state) count(tokens []string) map[int]int {
	counts := map[int]int{}
	for _, t := range tokens {
		if col, ok := s.vocab[t]; ok {
			counts[col]++
		}
	}
	return counts
}

func (s *state) weigh(counts map[int]int) vector {
	vec := make(vector, len(counts))
	var norm float64
	for col, c := range counts {
		w := float64(c) * s.idf[col]
		vec[col] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

func dot(a, b vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		sum += w * b[col]
	}
	return sum
}

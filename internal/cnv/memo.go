package cnv

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// Memo caches successful annotations for an interactive session, where the
// same call tends to be looked up repeatedly.
type Memo struct {
	annotator *Annotator
	cache     *lru.Cache
}

type memoKey struct {
	coordinate string
	eventType  string
	zygosity   string
}

// NewMemo wraps an annotator with an LRU cache holding up to size results.
func NewMemo(a *Annotator, size int) (*Memo, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create annotation cache: %w", err)
	}
	return &Memo{annotator: a, cache: cache}, nil
}

// Annotate returns a cached result when available, otherwise delegates to
// the annotator. Failures are not cached.
func (m *Memo) Annotate(coordinate, eventType, zygosity string) (*Result, error) {
	key := memoKey{
		coordinate: strings.TrimSpace(coordinate),
		eventType:  strings.TrimSpace(eventType),
		zygosity:   strings.TrimSpace(zygosity),
	}

	if v, ok := m.cache.Get(key); ok {
		return v.(*Result).clone(), nil
	}

	res, err := m.annotator.Annotate(coordinate, eventType, zygosity)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, res.clone())
	return res, nil
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}

func (r *Result) clone() *Result {
	c := *r
	c.Genes = append([]string{}, r.Genes...)
	return &c
}

package staticgen

import (
	"sort"
	"strings"
	"sync"
)

// PathSet holds the slugs the post route answers for.
//
// While a refresh is listing slugs, Add and Remove are also recorded in
// pending and replayed over the listed result, so an action that lands
// mid-refresh is not undone by a stale listing.
type PathSet struct {
	mu       sync.RWMutex
	slugs    map[string]struct{}
	tracking int
	pending  map[string]bool
}

func NewPathSet() *PathSet {
	return &PathSet{slugs: make(map[string]struct{})}
}

func (s *PathSet) Replace(result Result) {
	next := collect(result)

	s.mu.Lock()
	s.slugs = next
	s.mu.Unlock()
}

func (s *PathSet) Add(slug string) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return
	}

	s.mu.Lock()
	s.slugs[slug] = struct{}{}
	s.record(slug, true)
	s.mu.Unlock()
}

func (s *PathSet) Remove(slug string) {
	slug = strings.TrimSpace(slug)

	s.mu.Lock()
	delete(s.slugs, slug)
	s.record(slug, false)
	s.mu.Unlock()
}

// beginTracking must be paired with replaceTracked or endTracking.
func (s *PathSet) beginTracking() {
	s.mu.Lock()
	if s.tracking == 0 {
		s.pending = make(map[string]bool)
	}
	s.tracking++
	s.mu.Unlock()
}

// replaceTracked swaps in result with every Add and Remove made since
// beginTracking applied on top.
func (s *PathSet) replaceTracked(result Result) {
	next := collect(result)

	s.mu.Lock()
	for slug, added := range s.pending {
		if added {
			next[slug] = struct{}{}
		} else {
			delete(next, slug)
		}
	}
	s.slugs = next
	s.untrack()
	s.mu.Unlock()
}

func (s *PathSet) endTracking() {
	s.mu.Lock()
	s.untrack()
	s.mu.Unlock()
}

func (s *PathSet) untrack() {
	if s.tracking == 0 {
		return
	}
	s.tracking--
	if s.tracking == 0 {
		s.pending = nil
	}
}

func (s *PathSet) record(slug string, added bool) {
	if s.tracking == 0 || slug == "" {
		return
	}
	s.pending[slug] = added
}

func collect(result Result) map[string]struct{} {
	next := make(map[string]struct{}, len(result.Paths))
	for _, params := range result.Paths {
		slug := strings.TrimSpace(params.Slug)
		if slug == "" {
			continue
		}
		next[slug] = struct{}{}
	}
	return next
}

func (s *PathSet) Contains(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.slugs[slug]
	return ok
}

func (s *PathSet) Slugs() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.slugs))
	for slug := range s.slugs {
		out = append(out, slug)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

func (s *PathSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.slugs)
}

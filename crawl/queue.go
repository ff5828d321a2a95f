// Package crawl — discovery queue.
// A FIFO of pages to visit. URLs are normalized and deduplicated on
// insert, so two spellings of the same page (trailing slash, fragment)
// occupy a single slot and every page is visited at most once.
package crawl

// Queue holds the URLs still to visit during discovery.
type Queue struct {
	pending []string
	seen    map[string]struct{}
	head    int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Add normalizes rawURL and enqueues it unless an equivalent URL was
// already seen. It reports whether the URL was actually enqueued.
func (q *Queue) Add(rawURL string) bool {
	u := NormalizeURL(rawURL)
	if _, ok := q.seen[u]; ok {
		return false
	}
	q.seen[u] = struct{}{}
	q.pending = append(q.pending, u)
	return true
}

// HasNext reports whether unvisited URLs remain.
func (q *Queue) HasNext() bool {
	return q.head < len(q.pending)
}

// Next returns the next unvisited URL and advances past it.
func (q *Queue) Next() string {
	u := q.pending[q.head]
	q.head++
	return u
}

// Seen returns the number of unique normalized URLs added so far.
func (q *Queue) Seen() int {
	return len(q.seen)
}

// Discovered returns every queued URL in discovery order.
func (q *Queue) Discovered() []string {
	return q.pending
}

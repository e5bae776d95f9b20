package crawl

// Queue is a BFS queue with URL deduplication.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a URL if it hasn't been seen before. It reports whether
// the URL was new.
func (q *Queue) Add(url string) bool {
	if q.seen[url] {
		return false
	}
	q.seen[url] = true
	q.items = append(q.items, url)
	return true
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}

// Processed returns how many URLs have been taken from the queue.
func (q *Queue) Processed() int {
	return q.idx
}

// Len returns the total number of unique URLs seen.
func (q *Queue) Len() int {
	return len(q.items)
}

package crawl

// frontier is a FIFO of URLs that ignores anything already seen.
type frontier struct {
	items []string
	seen  map[string]struct{}
	next  int
}

func newFrontier() *frontier {
	return &frontier{seen: make(map[string]struct{})}
}

// push enqueues u unless it was pushed before.
func (f *frontier) push(u string) {
	if _, ok := f.seen[u]; ok {
		return
	}
	f.seen[u] = struct{}{}
	f.items = append(f.items, u)
}

// pop returns the next unvisited URL, or false when the frontier is drained.
func (f *frontier) pop() (string, bool) {
	if f.next >= len(f.items) {
		return "", false
	}
	u := f.items[f.next]
	f.next++
	return u, true
}

// all returns every URL pushed so far, in discovery order.
func (f *frontier) all() []string {
	return f.items
}

package bookstat

// Emitter receives the (normalized key, representative value) pairs
// produced by a Strategy.
type Emitter interface {
	Emit(key, value string) error
}

// fileEmitter stages the pairs emitted for one input file. A file is only
// merged into the shared Aggregator once it has been read to the end, so
// a file that turns out to be malformed contributes nothing.
//
// fileEmitter is owned by a single worker and is not threadsafe.
type fileEmitter struct {
	entries map[string]*Entry
	order   []string // keys in first-seen order
}

func newFileEmitter() *fileEmitter {
	return &fileEmitter{
		entries: make(map[string]*Entry),
	}
}

// Emit yields a key-value pair to the file's staging table.
func (e *fileEmitter) Emit(key, value string) error {
	if entry, exists := e.entries[key]; exists {
		entry.Count++
		return nil
	}
	e.entries[key] = &Entry{Count: 1, Representative: value}
	e.order = append(e.order, key)
	return nil
}

// commit merges the staged counts into agg, in first-seen order so the
// file's own first spelling of a key is the one offered to agg.
func (e *fileEmitter) commit(agg *Aggregator) {
	for _, key := range e.order {
		entry := e.entries[key]
		agg.Add(key, entry.Representative, entry.Count)
	}
}

// size returns the number of distinct keys staged.
func (e *fileEmitter) size() int {
	return len(e.entries)
}

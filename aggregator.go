package bookstat

import (
	"hash/fnv"
	"sync"
)

// Entry is one row of the frequency table.
type Entry struct {
	Count          uint64
	Representative string // first-seen spelling of the key
}

// Aggregator is a threadsafe frequency table keyed by normalized value.
// Keys are partitioned over independently locked shards so that workers
// counting different values rarely contend.
//
// Counts only ever grow: there is no way to decrement or remove a key, and
// a key's representative is fixed by the first call that creates it.
type Aggregator struct {
	shards []*aggregatorShard
}

type aggregatorShard struct {
	mut     sync.Mutex
	entries map[string]*Entry
}

// NewAggregator returns an empty Aggregator with numShards shards.
func NewAggregator(numShards uint) *Aggregator {
	if numShards == 0 {
		numShards = 1
	}
	shards := make([]*aggregatorShard, numShards)
	for i := range shards {
		shards[i] = &aggregatorShard{entries: make(map[string]*Entry)}
	}
	return &Aggregator{shards: shards}
}

// hashPartition partitions a key to one of numBins shards
func hashPartition(key string, numBins uint) uint {
	h := fnv.New64()
	h.Write([]byte(key))
	return uint(h.Sum64() % uint64(numBins))
}

func (a *Aggregator) shardFor(key string) *aggregatorShard {
	return a.shards[hashPartition(key, uint(len(a.shards)))]
}

// Increment adds one to key's count. If key is new, value becomes its
// representative.
func (a *Aggregator) Increment(key, value string) {
	a.Add(key, value, 1)
}

// Emit implements Emitter, so strategies can count straight into the table.
func (a *Aggregator) Emit(key, value string) error {
	a.Increment(key, value)
	return nil
}

// Add adds n to key's count. If key is new, value becomes its representative.
func (a *Aggregator) Add(key, value string, n uint64) {
	if n == 0 {
		return
	}
	shard := a.shardFor(key)
	shard.mut.Lock()
	defer shard.mut.Unlock()

	if entry, exists := shard.entries[key]; exists {
		entry.Count += n
		return
	}
	shard.entries[key] = &Entry{Count: n, Representative: value}
}

// Get returns a copy of key's entry.
func (a *Aggregator) Get(key string) (Entry, bool) {
	shard := a.shardFor(key)
	shard.mut.Lock()
	defer shard.mut.Unlock()

	entry, exists := shard.entries[key]
	if !exists {
		return Entry{}, false
	}
	return *entry, true
}

// Len returns the number of distinct keys.
func (a *Aggregator) Len() int {
	total := 0
	for _, shard := range a.shards {
		shard.mut.Lock()
		total += len(shard.entries)
		shard.mut.Unlock()
	}
	return total
}

// Snapshot copies the table. Each shard is copied under its own lock, so a
// snapshot taken while workers are still running is only consistent per key.
func (a *Aggregator) Snapshot() map[string]Entry {
	snapshot := make(map[string]Entry)
	for _, shard := range a.shards {
		shard.mut.Lock()
		for key, entry := range shard.entries {
			snapshot[key] = *entry
		}
		shard.mut.Unlock()
	}
	return snapshot
}

package extsort

import "github.com/kbukum/compgraph/row"

// mergeItem is one run's current head row, parked in the heap until it is
// popped and replaced by that run's next row.
type mergeItem struct {
	row    row.Row
	key    row.Key
	runIdx int
}

// mergeHeap orders mergeItems by key, breaking ties by runIdx so that when
// two runs both hold a row with an equal key, the row from the
// earlier-spilled run (which held earlier input) comes out first.
type mergeHeap struct {
	items []*mergeItem
	keys  []string
}

func (h *mergeHeap) Len() int { return len(h.items) }

func (h *mergeHeap) Less(i, j int) bool {
	c, err := h.items[i].key.Compare(h.items[j].key)
	if err != nil {
		// Keys were checked for presence when pushed, but sortIndexed only
		// compares rows within one run, so a kind mismatch between rows of
		// different runs is not reported; such items are ordered by runIdx.
		return h.items[i].runIdx < h.items[j].runIdx
	}
	if c != 0 {
		return c < 0
	}
	return h.items[i].runIdx < h.items[j].runIdx
}

func (h *mergeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *mergeHeap) Push(x any) { h.items = append(h.items, x.(*mergeItem)) }

func (h *mergeHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

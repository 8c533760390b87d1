package services

import "container/heap"

// frontierItem is a heap entry pointing at a node of the search arena.
type frontierItem struct {
	id  int
	f   float64
	seq int
}

// frontierHeap orders items by f, then by insertion sequence.
type frontierHeap []frontierItem

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x any) { *h = append(*h, x.(frontierItem)) }

func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// frontier is the open set of the search.
type frontier struct {
	items frontierHeap
	seq   int
}

func (f *frontier) push(id int, cost float64) {
	heap.Push(&f.items, frontierItem{id: id, f: cost, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() int {
	return heap.Pop(&f.items).(frontierItem).id
}

func (f *frontier) empty() bool {
	return len(f.items) == 0
}

// each calls fn for every queued node id in heap order, not cost order.
func (f *frontier) each(fn func(id int)) {
	for _, it := range f.items {
		fn(it.id)
	}
}

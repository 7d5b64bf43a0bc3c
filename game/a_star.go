package game

// SearchNode is an entry of the open set. It refers to a state in the
// solver's arena by handle.
type SearchNode struct {
	Handle   int // Index of the state in the arena
	Priority int // f = g + h
	seq      int // Insertion order, breaks ties first-in first-out
	index    int // The index of the item in the heap
}

// PriorityQueue implements a min-heap for SearchNodes.
type PriorityQueue []*SearchNode

// Len returns the length of the priority queue.
func (pq PriorityQueue) Len() int { return len(pq) }

// Less orders by priority, then by insertion.
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two SearchNodes in the priority queue.
func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds a SearchNode to the priority queue.
func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*SearchNode)
	item.index = n
	*pq = append(*pq, item)
}

// Pop removes and returns the best SearchNode from the priority queue.
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

package timeline

// Pool is a free list of runtime nodes keyed by NodeKind. Processors acquire
// nodes while building their tree and Dispose releases them again. After
// warmup, rebuilding a tree of the same shape allocates no nodes.
//
// A Pool is not safe for concurrent use; share one only between processors
// driven from the same goroutine.
type Pool struct {
	buckets map[NodeKind][]*Node
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Acquire returns a cleared node of the given kind, reusing a released one
// when available.
func (p *Pool) Acquire(kind NodeKind) *Node {
	var n *Node
	if p.buckets != nil {
		if stack := p.buckets[kind]; len(stack) > 0 {
			n = stack[len(stack)-1]
			stack[len(stack)-1] = nil
			p.buckets[kind] = stack[:len(stack)-1]
		}
	}
	if n == nil {
		n = &Node{}
	}
	n.kind = kind
	n.disposed = false
	n.pool = p
	return n
}

// Release returns a node to the pool. The node must have been fully cleared
// by Dispose first; releasing a node that is still bound to a model, parent,
// root or children panics, since a later Acquire would hand out stale state.
func (p *Pool) Release(n *Node) {
	if n == nil {
		return
	}
	if !n.disposed || n.model != nil || n.parent != nil || n.root != nil || len(n.children) > 0 {
		panic("timeline: releasing a node that was not reset")
	}
	if p.buckets == nil {
		p.buckets = make(map[NodeKind][]*Node)
	}
	p.buckets[n.kind] = append(p.buckets[n.kind], n)
}

// Len returns the number of free nodes of the given kind.
func (p *Pool) Len(kind NodeKind) int {
	return len(p.buckets[kind])
}

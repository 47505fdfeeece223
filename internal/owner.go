package internal

import (
	"iter"
	"sync"
)

type Owner struct {
	mu sync.Mutex

	// cleanup functions to be called once, when the owner is disposed
	cleanups []func()

	// called each time the owner is disposed
	disposers []func()

	// panic error handlers
	catchers []func(any)

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner. When called while another owner is running on the
// same goroutine, the new owner becomes its child.
func NewOwner() *Owner {
	o := &Owner{}

	if parent := CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

// Run calls fn with o as the current owner of the calling goroutine.
func (o *Owner) Run(fn func()) {
	defer o.recover()

	r := GetRuntime()
	defer r.releaseIfIdle()

	r.tracker.RunWithOwner(o, fn)
}

// Catch calls fn, routing a panic to o's catchers. A nil owner lets the panic through.
func (o *Owner) Catch(fn func()) {
	if o == nil {
		fn()
		return
	}

	defer o.recover()
	fn()
}

func (o *Owner) recover() {
	r := recover()
	if r == nil {
		return
	}

	catchers := o.handlers()
	if len(catchers) == 0 {
		panic(r)
	}

	for _, catcher := range catchers {
		catcher(r)
	}
}

// handlers returns the nearest catchers, walking up the owner tree.
func (o *Owner) handlers() []func(any) {
	for owner := o; owner != nil; owner = owner.parent {
		owner.mu.Lock()
		catchers := owner.catchers
		owner.mu.Unlock()

		if len(catchers) > 0 {
			return catchers
		}
	}

	return nil
}

func (parent *Owner) AddChild(child *Owner) {
	parent.mu.Lock()
	defer parent.mu.Unlock()

	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		n.mu.Lock()
		child := n.childrenHead
		n.mu.Unlock()

		for child != nil {
			if !yield(child) {
				return
			}

			child = child.nextSibling
		}
	}
}

// Dispose disposes the children, then runs the cleanups newest first.
func (n *Owner) Dispose() {
	n.DisposeChildren()

	n.mu.Lock()
	cleanups := n.cleanups
	disposers := n.disposers
	n.cleanups = nil
	n.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	for _, fn := range disposers {
		fn()
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}

	n.mu.Lock()
	n.childrenHead = nil
	n.mu.Unlock()
}

func (n *Owner) OnCleanup(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cleanups = append(n.cleanups, fn)
}

func (n *Owner) OnDispose(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.disposers = append(n.disposers, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.catchers = append(n.catchers, fn)
}

package internal

import (
	"iter"
	"sync"
	"time"
)

// Emission is an untyped timestamped value travelling through a node.
type Emission struct {
	Time  time.Time
	Value any
}

// Node owns an ordered subscriber list. Subscribers are called in the order
// they were added.
type Node struct {
	mu sync.Mutex

	subsHead *SubscriberLink
	count    int
}

func NewNode() *Node {
	return &Node{}
}

// Subscribe appends fn to the subscriber list.
func (n *Node) Subscribe(fn func(Emission)) *SubscriberLink {
	link := &SubscriberLink{node: n, fn: fn}

	n.mu.Lock()
	n.addSubLink(link)
	n.mu.Unlock()

	return link
}

// Emit delivers e to every subscriber registered when Emit was called.
// A panic in a subscriber aborts the remaining deliveries.
func (n *Node) Emit(e Emission) {
	r := Enter()
	defer r.Exit()

	for _, link := range n.snapshot() {
		// removed by an earlier subscriber of this same emission
		if link.Removed() {
			continue
		}

		link.fn(e)
	}
}

// Len returns the number of registered subscribers.
func (n *Node) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.count
}

// Subs returns an iterator over the subscriber links, in order.
func (n *Node) Subs() iter.Seq[*SubscriberLink] {
	return func(yield func(*SubscriberLink) bool) {
		for _, link := range n.snapshot() {
			if !yield(link) {
				return
			}
		}
	}
}

func (n *Node) snapshot() []*SubscriberLink {
	n.mu.Lock()
	defer n.mu.Unlock()

	links := make([]*SubscriberLink, 0, n.count)
	for link := n.subsHead; link != nil; link = link.nextSub {
		links = append(links, link)
	}

	return links
}

func (n *Node) addSubLink(link *SubscriberLink) {
	if n.subsHead == nil {
		n.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := n.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		n.subsHead.prevSub = link
	}

	n.count++
}

func (n *Node) removeSubLink(link *SubscriberLink) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !link.removed.CompareAndSwap(false, true) {
		return false
	}

	// single link
	if link.prevSub == link {
		n.subsHead = nil
	} else {
		head := n.subsHead
		if link == head {
			n.subsHead = link.nextSub
		} else {
			link.prevSub.nextSub = link.nextSub
		}

		next := link.nextSub
		if next == nil {
			next = n.subsHead
		}
		next.prevSub = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
	n.count--

	return true
}

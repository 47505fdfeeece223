package internal

import "sync/atomic"

// SubscriberLink is one entry of a node's subscriber list.
type SubscriberLink struct {
	node *Node
	fn   func(Emission)

	removed atomic.Bool

	prevSub *SubscriberLink
	nextSub *SubscriberLink
}

// Removed reports whether the link has been detached from its node.
func (l *SubscriberLink) Removed() bool {
	return l.removed.Load()
}

// Unlink detaches the link from its node. Only the first call returns true.
func (l *SubscriberLink) Unlink() bool {
	return l.node.removeSubLink(l)
}

package sigstream

import "github.com/AnatoleLucet/sigstream/internal"

// Owner scopes subscriptions. Every subscription made on the goroutine running
// Owner.Run, including the ones installed by operators and combinators, is
// removed when the owner is disposed.
type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new owner. Created inside another owner's Run, it becomes
// a child of that owner and is disposed with it.
func NewOwner() *Owner {
	return &Owner{internal.NewOwner()}
}

// Run fn within the context of this owner.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })

	return err
}

// Dispose this owner and all its children, removing their subscriptions newest first.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed (each time Dispose is called).
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a panic occurs within this owner, including
// panics raised by timer driven propagation of throttles created in it.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

// OnCleanup registers fn with the owner currently running, if any.
func OnCleanup(fn func()) {
	internal.OnCleanup(fn)
}

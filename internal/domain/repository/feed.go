package repository

// Snapshot is one delivery from a live query: the full current document
// set, not a diff. Consumers must replace prior state with each delivery.
// A delivery with Err set reports a subscription failure; the feed closes
// after delivering it.
type Snapshot[T any] struct {
	Items []T
	Err   error
}

// Feed is a single-producer live subscription. Updates is closed after
// Stop is called or after a terminal error delivery; Stop is idempotent.
type Feed[T any] struct {
	Updates <-chan Snapshot[T]
	Stop    func()
}

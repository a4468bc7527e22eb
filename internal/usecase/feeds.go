package usecase

import "servicehub/internal/domain/repository"

// sortFeed re-delivers a repository feed with each snapshot sorted into
// presentation order. Error deliveries pass through untouched.
func sortFeed[T any](feed *repository.Feed[T], sortFn func([]T)) *repository.Feed[T] {
	out := make(chan repository.Snapshot[T], 1)

	go func() {
		defer close(out)
		for snap := range feed.Updates {
			if snap.Err == nil {
				sortFn(snap.Items)
			}
			out <- snap
		}
	}()

	return &repository.Feed[T]{Updates: out, Stop: feed.Stop}
}

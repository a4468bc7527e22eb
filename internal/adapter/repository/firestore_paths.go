package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
	"servicehub/pkg/logger"
)

// All documents live under artifacts/{appID}, so deployments sharing one
// Firebase project never see each other's data. Profiles additionally
// nest under their owning identity.

func publicData(client *firestore.Client, appID string) *firestore.DocumentRef {
	return client.Collection("artifacts").Doc(appID).Collection("public").Doc("data")
}

func profileDoc(client *firestore.Client, appID, identity string) *firestore.DocumentRef {
	return client.Collection("artifacts").Doc(appID).
		Collection("users").Doc(identity).
		Collection("profile").Doc("data")
}

// subscribeQuery pumps Firestore query snapshots into a Feed. Every
// delivery carries the fully materialized document set; malformed
// documents are skipped rather than failing the whole delivery. The feed
// closes after Stop, or after one terminal error delivery.
func subscribeQuery[T any](ctx context.Context, q firestore.Query, label string, decode func(*firestore.DocumentSnapshot) (T, bool)) *repository.Feed[T] {
	ctx, cancel := context.WithCancel(ctx)
	snaps := q.Snapshots(ctx)
	updates := make(chan repository.Snapshot[T], 1)

	go func() {
		defer close(updates)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				logger.Error("Live query failed for %s: %v", label, err)
				select {
				case updates <- repository.Snapshot[T]{Err: errors.Subscription("Live query failed for "+label, err)}:
				case <-ctx.Done():
				}
				return
			}

			var items []T
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Error("Snapshot iteration failed for %s: %v", label, err)
					select {
					case updates <- repository.Snapshot[T]{Err: errors.Subscription("Snapshot iteration failed for "+label, err)}:
					case <-ctx.Done():
					}
					return
				}
				if item, ok := decode(doc); ok {
					items = append(items, item)
				}
			}

			select {
			case updates <- repository.Snapshot[T]{Items: items}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &repository.Feed[T]{Updates: updates, Stop: cancel}
}

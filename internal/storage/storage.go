// Package storage holds uploaded meal photos while they are analyzed.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageStore persists an image and returns a key that Delete accepts.
type ImageStore interface {
	Upload(ctx context.Context, userID int, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey names an upload as {userID}/{unix timestamp}_{short uuid}.jpg.
func ObjectKey(userID int, now time.Time) string {
	return fmt.Sprintf("%d/%d_%s.jpg", userID, now.Unix(), uuid.NewString()[:8])
}

// Discard is an ImageStore that keeps nothing.
type Discard struct{}

func (Discard) Upload(_ context.Context, userID int, _ []byte, _ string) (string, error) {
	return ObjectKey(userID, time.Now()), nil
}

func (Discard) Delete(context.Context, string) error { return nil }

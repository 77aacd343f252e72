package middleware

import (
	"context"
	"sync"
)

type navKey struct{}

// navSlot receives the location the API client asks to navigate to while a
// request is being served.
type navSlot struct {
	mu       sync.Mutex
	location string
}

func withNavSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, navKey{}, &navSlot{})
}

// Navigator records navigation requests in the slot of the current request.
// The error handler turns a recorded location into a redirect.
type Navigator struct{}

func (Navigator) Navigate(ctx context.Context, location string) {
	slot, ok := ctx.Value(navKey{}).(*navSlot)
	if !ok {
		return
	}
	slot.mu.Lock()
	slot.location = location
	slot.mu.Unlock()
}

// PendingNavigation returns the location recorded for ctx, if any.
func PendingNavigation(ctx context.Context) (string, bool) {
	slot, ok := ctx.Value(navKey{}).(*navSlot)
	if !ok {
		return "", false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.location, slot.location != ""
}

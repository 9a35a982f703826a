// Package sync provides the runner logic for refreshing the offline cache.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/mercury/pkg/app"
)

// Sync pulls goals, habits, and the surrounding weeks into the snapshot
// cache so the week grid works without a connection.
type Sync struct {
	Service *app.Service
}

func (n *Sync) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not sync, no service")
	}
	if err := n.Service.Sync(ctx, time.Now()); err != nil {
		return err
	}

	weeks := n.Service.Cache.CachedWeeks(ctx, n.Service.UserID)
	fmt.Printf("synced, %d week snapshot", len(weeks))
	if len(weeks) != 1 {
		fmt.Print("s")
	}
	fmt.Println(" cached")
	return nil
}

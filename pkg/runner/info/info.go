// Package info provides the runner that reports configuration and cache
// state.
package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/config"
	"tableflip.dev/mercury/pkg/session"
)

type Info struct {
	Config  *config.Config
	Session session.Session
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("MERCURY_CONFIG_PATH"); override != "" {
		fmt.Println("MERCURY_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("MERCURY_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.apiBaseUrl: ", n.Config.APIBaseURL)
	fmt.Println("Config.cachePath: ", n.Config.CachePath)

	switch n.Session.State {
	case session.Authenticated:
		fmt.Printf("Signed in as %s (%s/%s)\n", n.Session.User.Username, n.Session.User.Provider, n.Session.User.ProviderID)
	default:
		fmt.Println("Not signed in")
		if n.Session.Err != nil {
			fmt.Println("  ", n.Session.Err)
		}
	}

	if n.Service == nil || n.Service.Cache == nil {
		return fmt.Errorf("failed to open the snapshot cache")
	}

	fmt.Printf("Cached weeks:\n")
	found := 0
	for _, week := range n.Service.Cache.CachedWeeks(ctx, n.Service.UserID) {
		fmt.Printf("  %s\n", week)
		found++
	}
	if found == 0 {
		fmt.Printf("  %s\n", "no snapshots")
	}

	return nil
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/mercury/pkg/ai"
	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/app"
	"tableflip.dev/mercury/pkg/config"
	"tableflip.dev/mercury/pkg/session"
	"tableflip.dev/mercury/pkg/store"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mercury",
		Short: base.Wrap80("Goal and habit tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addWeek(topLevel)
	addGet(topLevel)
	addGoal(topLevel)
	addHabit(topLevel)
	addToggle(topLevel)
	addNote(topLevel)
	addSync(topLevel)
	addLogin(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
}

// env bundles the shared collaborators commands need.
type env struct {
	Config  *config.Config
	Client  *api.Client
	Session session.Session
	Service *app.Service
}

// loadEnv builds the client, cache, and session from configuration. When
// auth is set the session must resolve to a signed-in user.
func loadEnv(ctx context.Context, auth bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL)
	cache, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}

	e := &env{
		Config:  cfg,
		Client:  client,
		Service: &app.Service{Backend: client, Creator: client, Cache: cache},
	}
	if cfg.OpenAIKey != "" {
		e.Service.AI = ai.New(cfg.OpenAIKey)
	}

	e.Session = session.Resolve(ctx, client, cfg.Provider, cfg.ProviderID)
	if auth {
		uid, err := e.Session.UserID()
		if err != nil {
			return nil, err
		}
		e.Service.UserID = uid
	}

	return e, nil
}

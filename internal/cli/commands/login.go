package commands

import (
	"ChefHub/internal/cli/api"
	"ChefHub/internal/config"
	"context"
	"fmt"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the auth token" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload := map[string]string{"username": args[0], "password": args[1]}
	var chef chefView
	if _, err := api.NewClient(cfg.ServerURL, "").Post(ctx, "/chefs/login", payload, &chef); err != nil {
		return err
	}
	if err := tokenStore(cfg).Save(chef.Token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (chef #%d)\n", chef.Username, chef.ID)
	return nil
}

func init() { Register(SectionAccount, loginCmd{}) }

package commands

import (
	"ChefHub/internal/cli/api"
	"ChefHub/internal/config"
	"context"
	"fmt"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a chef and store the auth token" }
func (registerCmd) Usage() string       { return "register <name> <username> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	payload := map[string]string{"name": args[0], "username": args[1], "password": args[2]}
	var chef chefView
	if _, err := api.NewClient(cfg.ServerURL, "").Post(ctx, "/chefs", payload, &chef); err != nil {
		return err
	}
	if err := tokenStore(cfg).Save(chef.Token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Registered chef #%d %s (%s)\n", chef.ID, chef.Name, chef.Username)
	return nil
}

func init() { Register(SectionAccount, registerCmd{}) }

package commands

import (
	"ChefHub/internal/config"
	"context"
	"fmt"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the logged in chef" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, _ []string) error {
	c, err := newClient(cfg, true)
	if err != nil {
		return err
	}
	var chef chefView
	if _, err := c.Get(ctx, "/chefs/me", &chef); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s (%s, chef #%d) at %s\n", chef.Username, chef.Name, chef.ID, cfg.ServerURL)
	return nil
}

func init() { Register(SectionAccount, statusCmd{}) }

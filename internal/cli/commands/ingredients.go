package commands

import (
	"ChefHub/internal/config"
	"context"
	"fmt"
	"net/url"
	"strings"
)

type ingredientAddCmd struct{}

func (ingredientAddCmd) Name() string        { return "ingredient-add" }
func (ingredientAddCmd) Description() string { return "Add an ingredient to the shared catalog" }
func (ingredientAddCmd) Usage() string       { return "ingredient-add <name> <unit>" }

func (ingredientAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	c, err := newClient(cfg, true)
	if err != nil {
		return err
	}
	var ing ingredientView
	if _, err := c.Post(ctx, "/ingredients", map[string]string{"name": args[0], "unit": args[1]}, &ing); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Added ingredient #%d %s (%s)\n", ing.ID, ing.Name, ing.Unit)
	return nil
}

type ingredientsCmd struct{}

func (ingredientsCmd) Name() string        { return "ingredients" }
func (ingredientsCmd) Description() string { return "List ingredients" }
func (ingredientsCmd) Usage() string       { return "ingredients [search]" }

func (ingredientsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	c, err := newClient(cfg, false)
	if err != nil {
		return err
	}
	q := url.Values{"pageSize": {"100"}}
	if len(args) > 0 {
		q.Set("search", strings.Join(args, " "))
	}
	var items []ingredientView
	env, err := c.Get(ctx, "/ingredients?"+q.Encode(), &items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No ingredients")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(Out, "#%d %s (%s)\n", it.ID, it.Name, it.Unit)
	}
	fmt.Fprintf(Out, "Total: %d\n", env.Total)
	return nil
}

func init() {
	Register(SectionCatalog, ingredientAddCmd{}, ingredientsCmd{})
}

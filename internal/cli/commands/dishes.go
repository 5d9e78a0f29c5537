package commands

import (
	"ChefHub/internal/config"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type dishCreateCmd struct{}

func (dishCreateCmd) Name() string        { return "dish-create" }
func (dishCreateCmd) Description() string { return "Create a dish (version 1)" }
func (dishCreateCmd) Usage() string       { return "dish-create <name> <id:amount,...>" }

func (dishCreateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	lines, err := parseLines(args[1])
	if err != nil {
		return err
	}
	c, err := newClient(cfg, true)
	if err != nil {
		return err
	}
	var d dishView
	if _, err := c.Post(ctx, "/dishes", map[string]any{"name": args[0], "ingredients": lines}, &d); err != nil {
		return err
	}
	printDish(Out, d)
	return nil
}

type dishReviseCmd struct{}

func (dishReviseCmd) Name() string        { return "dish-revise" }
func (dishReviseCmd) Description() string { return "Replace the composition of a dish, optionally renaming it" }
func (dishReviseCmd) Usage() string       { return "dish-revise <dishId> <id:amount,...> [newName]" }

func (dishReviseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	id, err := parseID(args[0], "dishId")
	if err != nil {
		return err
	}
	lines, err := parseLines(args[1])
	if err != nil {
		return err
	}
	payload := map[string]any{"ingredients": lines}
	if len(args) > 2 {
		payload["name"] = strings.Join(args[2:], " ")
	}
	c, err := newClient(cfg, true)
	if err != nil {
		return err
	}
	var d dishView
	if _, err := c.Put(ctx, "/dishes/"+strconv.FormatInt(id, 10)+"/ingredients", payload, &d); err != nil {
		return err
	}
	printDish(Out, d)
	return nil
}

type dishGetCmd struct{}

func (dishGetCmd) Name() string        { return "dish" }
func (dishGetCmd) Description() string { return "Show the current composition of a dish" }
func (dishGetCmd) Usage() string       { return "dish <dishId>" }

func (dishGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := parseID(args[0], "dishId")
	if err != nil {
		return err
	}
	c, err := newClient(cfg, false)
	if err != nil {
		return err
	}
	var d dishView
	if _, err := c.Get(ctx, "/dishes/"+strconv.FormatInt(id, 10)+"/ingredients", &d); err != nil {
		return err
	}
	printDish(Out, d)
	return nil
}

type dishHistoryCmd struct{}

func (dishHistoryCmd) Name() string        { return "dish-history" }
func (dishHistoryCmd) Description() string { return "Show all versions of a dish, newest first" }
func (dishHistoryCmd) Usage() string       { return "dish-history <dishId> [page]" }

func (dishHistoryCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := parseID(args[0], "dishId")
	if err != nil {
		return err
	}
	q := url.Values{}
	if len(args) > 1 {
		page, err := parseID(args[1], "page")
		if err != nil {
			return err
		}
		q.Set("current", strconv.FormatInt(page, 10))
	}
	c, err := newClient(cfg, false)
	if err != nil {
		return err
	}
	path := "/dishes/" + strconv.FormatInt(id, 10) + "/ingredients/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var h historyView
	env, err := c.Get(ctx, path, &h)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Dish #%d %q, current version %d (%d versions)\n",
		h.Dish.ID, h.Dish.Name, h.Dish.CurrentVersionNumber, env.Total)
	for _, v := range h.Histories {
		fmt.Fprintf(Out, "Version %d:\n", v.VersionNumber)
		printLines(Out, v.Ingredients)
	}
	return nil
}

type dishesCmd struct{}

func (dishesCmd) Name() string        { return "dishes" }
func (dishesCmd) Description() string { return "List dishes with their current compositions" }
func (dishesCmd) Usage() string       { return "dishes [search]" }

func (dishesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	c, err := newClient(cfg, false)
	if err != nil {
		return err
	}
	q := url.Values{"pageSize": {"100"}}
	if len(args) > 0 {
		q.Set("search", strings.Join(args, " "))
	}
	var items []dishView
	env, err := c.Get(ctx, "/dishes?"+q.Encode(), &items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No dishes")
		return nil
	}
	for _, d := range items {
		printDish(Out, d)
	}
	fmt.Fprintf(Out, "Total: %d\n", env.Total)
	return nil
}

func init() {
	Register(SectionDishes,
		dishCreateCmd{},
		dishReviseCmd{},
		dishGetCmd{},
		dishHistoryCmd{},
		dishesCmd{},
	)
}

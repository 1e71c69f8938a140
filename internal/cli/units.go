package cli

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// unitOutput is the JSON form of a catalog unit with its stored state.
type unitOutput struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Group     string `json:"group"`
	Favorite  bool   `json:"favorite"`
	Paired    string `json:"paired,omitempty"`
	Frequency int64  `json:"frequency"`
}

func (a *app) newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units [group]",
		Short: "List units, favorites first, then by use",
		Example: `  unitto units
  unitto units temperature`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runUnits,
	}
}

func (a *app) runUnits(cmd *cobra.Command, args []string) error {
	groups := a.catalog.Groups()
	if len(args) == 1 {
		g := types.Group(args[0])
		if !slices.Contains(groups, g) {
			return userError(fmt.Errorf("unknown group %q", args[0]))
		}
		groups = []types.Group{g}
	}

	var units []types.Unit
	ids := []string{}
	for _, g := range groups {
		for _, u := range a.catalog.Group(g) {
			units = append(units, u)
			ids = append(ids, u.ID)
		}
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableUnits)
	if err != nil {
		return sysError(err)
	}
	stored, err := table.Fetch(map[string]any{"unit_ids": ids})
	if err != nil {
		return sysError(err)
	}
	states := make(map[string]*types.UnitState, len(stored))
	for _, v := range stored {
		s := v.(*types.UnitState)
		states[s.UnitID] = s
	}

	list := make([]unitOutput, 0, len(units))
	for _, u := range units {
		out := unitOutput{ID: u.ID, Symbol: u.Symbol, Group: string(u.Group)}
		if s, ok := states[u.ID]; ok {
			out.Favorite = s.IsFavorite
			out.Paired = s.PairedUnitID
			out.Frequency = s.Frequency
		}
		list = append(list, out)
	}
	slices.SortStableFunc(list, compareUnits)

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), list)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, u := range list {
		star := ""
		if u.Favorite {
			star = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", star, u.ID, u.Symbol, u.Group)
	}
	return w.Flush()
}

// compareUnits orders favorites first, then more frequently used units.
// Ties keep catalog order.
func compareUnits(x, y unitOutput) int {
	if x.Favorite != y.Favorite {
		if x.Favorite {
			return -1
		}
		return 1
	}
	return cmp.Compare(y.Frequency, x.Frequency)
}

func (a *app) newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <unit>",
		Short: "Mark or unmark a unit as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.lookupUnit(args[0])
			if err != nil {
				return err
			}
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			fav, err := backend.ToggleFavorite(u.ID)
			if err != nil {
				return sysError(err)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": u.ID, "favorite": fav})
			}
			state := "favorite"
			if !fav {
				state = "not favorite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", u.ID, state)
			return nil
		},
	}
}

func (a *app) newPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair <unit> <paired>",
		Short: "Set the unit convert uses when no target is given",
		Example: `  unitto pair kilometer nautical_mile
  unitto convert 10 kilometer`,
		Args: cobra.ExactArgs(2),
		RunE: a.runPair,
	}
}

func (a *app) runPair(cmd *cobra.Command, args []string) error {
	from, err := a.lookupUnit(args[0])
	if err != nil {
		return err
	}
	to, err := a.lookupUnit(args[1])
	if err != nil {
		return err
	}
	if from.Group != to.Group {
		return userError(fmt.Errorf("%w: %s (%s) and %s (%s)",
			types.ErrGroupMismatch, from.ID, from.Group, to.ID, to.Group))
	}

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableUnits)
	if err != nil {
		return sysError(err)
	}
	state := &types.UnitState{UnitID: from.ID}
	v, err := table.Get(from.ID)
	switch {
	case err == nil:
		state = v.(*types.UnitState)
	case !errors.Is(err, types.ErrNotFound):
		return sysError(err)
	}
	state.PairedUnitID = to.ID
	if _, err := table.Set(from.ID, state); err != nil {
		return sysError(err)
	}

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]string{"id": from.ID, "paired": to.ID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: paired with %s\n", from.ID, to.ID)
	return nil
}

func (a *app) newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <unit>",
		Short: "Clear the stored favorite flag, pair, and usage count of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.lookupUnit(args[0])
			if err != nil {
				return err
			}
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			table, err := backend.GetTable(types.TableUnits)
			if err != nil {
				return sysError(err)
			}
			if err := table.Delete(u.ID); err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return userError(fmt.Errorf("%s has no stored state", u.ID))
				}
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: forgotten\n", u.ID)
			return nil
		},
	}
}

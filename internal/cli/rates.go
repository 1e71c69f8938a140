package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/unitto/internal/catalog"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

// rateFile is the YAML document read by "rates import":
//
//	fetched_at: 2026-10-19T08:00:00Z
//	rates:
//	  eur: 0.92
//	  gbp: 0.79
type rateFile struct {
	FetchedAt time.Time         `yaml:"fetched_at"`
	Rates     map[string]string `yaml:"rates"`
}

// rateOutput is the JSON form of a stored rate.
type rateOutput struct {
	ID        string    `json:"id"`
	Currency  string    `json:"currency"`
	Value     string    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (a *app) newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage currency rates",
		Long: `Rates are stored as the amount of a currency equal to one US dollar.
The latest rate of each currency is used by convert.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <currency> <rate>",
			Short: "Store a rate for a currency",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.storeRates(cmd, map[string]string{args[0]: args[1]}, time.Time{})
			},
		},
		&cobra.Command{
			Use:   "import <file.yaml>",
			Short: "Store the rates listed in a YAML file",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runRatesImport,
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show the latest rate of every currency",
			Args:  cobra.NoArgs,
			RunE:  a.runRatesList,
		},
		&cobra.Command{
			Use:   "delete <rate-id>",
			Short: "Remove a stored rate by the ID shown in rates list",
			Long: `Remove a stored rate. The previous rate of the same currency, if any,
becomes the latest.`,
			Args: cobra.ExactArgs(1),
			RunE: a.runRatesDelete,
		},
	)
	return cmd
}

func (a *app) runRatesImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return userError(fmt.Errorf("read rates file: %w", err))
	}
	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return userError(fmt.Errorf("parse rates file %s: %w", args[0], err))
	}
	if len(f.Rates) == 0 {
		return userError(fmt.Errorf("rates file %s lists no rates", args[0]))
	}
	return a.storeRates(cmd, f.Rates, f.FetchedAt)
}

// storeRates validates every currency before writing any rate.
func (a *app) storeRates(cmd *cobra.Command, rates map[string]string, fetchedAt time.Time) error {
	currencies := make([]string, 0, len(rates))
	for cur := range rates {
		u, err := a.lookupUnit(cur)
		if err != nil {
			return err
		}
		if u.Group != types.GroupCurrency {
			return userError(fmt.Errorf("%w: %s", types.ErrNotCurrency, u.ID))
		}
		if u.ID == catalog.CurrencyBase {
			return userError(fmt.Errorf("%s is the base currency; its rate is always 1", u.ID))
		}
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)

	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableRates)
	if err != nil {
		return sysError(err)
	}
	for _, cur := range currencies {
		r := &types.Rate{
			Currency:  strings.ToLower(cur),
			Value:     strings.TrimSpace(rates[cur]),
			FetchedAt: fetchedAt,
		}
		if _, err := table.Set("", r); err != nil {
			return userError(fmt.Errorf("store rate for %s: %w", cur, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", r.Currency, r.Value)
	}
	a.log.Info().Int("count", len(currencies)).Msg("rates stored")
	return nil
}

func (a *app) runRatesList(cmd *cobra.Command, args []string) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	latest, err := backend.LatestRates()
	if err != nil {
		return sysError(err)
	}
	list := make([]rateOutput, 0, len(latest))
	for _, r := range latest {
		list = append(list, rateOutput{ID: r.RateID, Currency: r.Currency, Value: r.Value, FetchedAt: r.FetchedAt})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Currency < list[j].Currency })

	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), list)
	}
	for _, r := range list {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", r.Currency, r.Value, r.FetchedAt.Format(time.RFC3339), r.ID)
	}
	return nil
}

func (a *app) runRatesDelete(cmd *cobra.Command, args []string) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableRates)
	if err != nil {
		return sysError(err)
	}
	v, err := table.Get(args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return userError(fmt.Errorf("no rate with id %q", args[0]))
		}
		return sysError(err)
	}
	r := v.(*types.Rate)
	if err := table.Delete(r.RateID); err != nil {
		return sysError(err)
	}
	a.log.Info().Str("currency", r.Currency).Str("rate_id", r.RateID).Msg("rate deleted")
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s = %s\n", r.Currency, r.Value)
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/unitto/internal/convert"
	"github.com/mesh-intelligence/unitto/internal/logging"
	"github.com/mesh-intelligence/unitto/internal/paths"
	"github.com/mesh-intelligence/unitto/internal/sqlite"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

// resolveDataDir returns the data directory: --data-dir, then data_dir
// from config, then UNITTO_DATA_DIR, then the platform default.
func (a *app) resolveDataDir() (string, error) {
	configValue := ""
	if a.cfg != nil {
		configValue = a.cfg.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(a.dataDir, configValue)
}

// attachBackend resolves the data directory and attaches a SQLite backend
// to it. The caller must Detach the backend.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	backend := sqlite.NewBackend(sqlite.WithLogger(logging.Component(a.log, "store")))
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return backend, nil
}

// lookupUnit returns a catalog unit, classifying an unknown ID as a user
// error.
func (a *app) lookupUnit(id string) (types.Unit, error) {
	u, err := a.catalog.Get(id)
	if err != nil {
		return types.Unit{}, userError(err)
	}
	return u, nil
}

// rateSource provides the latest stored rates on demand.
type rateSource func() (map[string]types.Rate, error)

// withRate injects a rate into a currency unit that has no factor. Rates
// given on the command line take precedence over stored ones.
func withRate(conv *convert.Converter, u types.Unit, flagRates map[string]string, stored rateSource) (types.Unit, error) {
	if u.Group != types.GroupCurrency || u.Factor != nil {
		return u, nil
	}

	text, ok := lookupFold(flagRates, u.ID)
	if !ok {
		latest, err := stored()
		if err != nil {
			return u, sysError(err)
		}
		r, found := latest[u.ID]
		if !found {
			return u, userError(fmt.Errorf("%w: no rate for %s (use --rate %s=VALUE or rates set)",
				types.ErrFactorMissing, u.ID, u.ID))
		}
		text = r.Value
	}

	rate, err := convert.ParseRate(text)
	if err != nil {
		return u, userError(err)
	}
	out, err := conv.WithRate(u, rate)
	if err != nil {
		return u, userError(err)
	}
	return out, nil
}

func lookupFold(m map[string]string, key string) (string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

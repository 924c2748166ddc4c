package api

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/warp/rescisao-engine/factory"
	"github.com/warp/rescisao-engine/rules"
	"github.com/warp/rescisao-engine/store/sqlite"
)

// LoadRuleTable returns the rule table the engine should run with.
//
// A non-empty rulesFile is imported as a new version and activated.
// Otherwise the active stored version is used, and an empty store is seeded
// with the built-in table. The table is loaded once; changing it needs a
// restart.
func LoadRuleTable(ctx context.Context, store *sqlite.Store, f *factory.RuleTableFactory, rulesFile string, logger *slog.Logger) (*rules.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if rulesFile != "" {
		table, err := f.LoadFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules file %s: %w", rulesFile, err)
		}
		if err := saveAndActivate(ctx, store, f, table, "imported from "+filepath.Base(rulesFile)); err != nil {
			return nil, err
		}
		logger.Info("rule table imported", "version", table.Version(), "file", rulesFile)
		return table, nil
	}

	rec, err := store.ActiveRuleTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active rule table: %w", err)
	}
	if rec != nil {
		table, err := f.ParseJSON([]byte(rec.ConfigJSON))
		if err != nil {
			return nil, fmt.Errorf("parse stored rule table %s: %w", rec.Version, err)
		}
		logger.Info("rule table loaded", "version", table.Version())
		return table, nil
	}

	table := rules.Default()
	if err := saveAndActivate(ctx, store, f, table, "built-in"); err != nil {
		return nil, err
	}
	logger.Info("rule table seeded", "version", table.Version())
	return table, nil
}

func saveAndActivate(ctx context.Context, store *sqlite.Store, f *factory.RuleTableFactory, table *rules.Table, description string) error {
	data, err := f.MarshalJSON(table)
	if err != nil {
		return fmt.Errorf("encode rule table %s: %w", table.Version(), err)
	}
	rec := sqlite.RuleTableRecord{
		Version:     table.Version(),
		Description: description,
		ConfigJSON:  string(data),
	}
	if err := store.SaveRuleTable(ctx, rec); err != nil {
		return fmt.Errorf("save rule table %s: %w", table.Version(), err)
	}
	if err := store.ActivateRuleTable(ctx, table.Version()); err != nil {
		return fmt.Errorf("activate rule table %s: %w", table.Version(), err)
	}
	return nil
}

package refdata

import (
	"context"
	"fmt"
	"os"

	"github.com/AmerThamer/bkv-inspector-app/observability"
)

// Importer re-reads the remembered source files into the store.
type Importer struct {
	store  *Store
	logger observability.Logger
}

// NewImporter returns an importer writing into store. A nil logger is
// replaced by a no-op one.
func NewImporter(store *Store, logger observability.Logger) *Importer {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Importer{store: store, logger: logger}
}

// Remember records path as the source of kind without importing it.
func (im *Importer) Remember(ctx context.Context, kind Kind, path string) error {
	return im.store.SetSourceFile(ctx, kind, path)
}

// Import parses every configured source file and replaces the stored list.
// Lists without a remembered file are left untouched.
func (im *Importer) Import(ctx context.Context) (map[Kind]Stats, error) {
	counts := make(map[Kind]Stats, len(Kinds))
	for _, kind := range Kinds {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		path, err := im.store.SourceFile(ctx, kind)
		if err != nil {
			return counts, err
		}
		if path == "" {
			continue
		}
		stats, err := im.ImportFile(ctx, kind, path)
		if err != nil {
			return counts, err
		}
		counts[kind] = stats
	}
	return counts, nil
}

// ImportFile parses one file as kind and stores the result.
func (im *Importer) ImportFile(ctx context.Context, kind Kind, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open %s list: %w", kind, err)
	}
	defer f.Close()

	var stats Stats
	switch kind {
	case KindDrivers:
		var items []Driver
		if items, stats, err = ParseDrivers(f); err == nil {
			err = im.store.SaveDrivers(ctx, items)
		}
	case KindRoutes:
		var items []Route
		if items, stats, err = ParseRoutes(f); err == nil {
			err = im.store.SaveRoutes(ctx, items)
		}
	case KindInspectors:
		var items []Inspector
		if items, stats, err = ParseInspectors(f); err == nil {
			err = im.store.SaveInspectors(ctx, items)
		}
	default:
		return Stats{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("import %s from %s: %w", kind, path, err)
	}
	im.logger.Info("reference list imported",
		observability.String("list", string(kind)),
		observability.String("path", path),
		observability.Int("records", stats.Records),
		observability.Int("skipped", stats.Skipped))
	return stats, nil
}

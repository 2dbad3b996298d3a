package refdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreEmptyLists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	drivers, err := s.Drivers(ctx)
	if err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	if drivers == nil || len(drivers) != 0 {
		t.Fatalf("Drivers = %#v, want empty list", drivers)
	}
	path, err := s.SourceFile(ctx, KindRoutes)
	if err != nil || path != "" {
		t.Fatalf("SourceFile = %q, %v", path, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	routes := []Route{{Line: "7", Location: "Astoria"}, {Line: "7", Location: "Blaha Lujza tér, M2"}}
	if err := s.SaveRoutes(ctx, routes); err != nil {
		t.Fatalf("SaveRoutes: %v", err)
	}
	got, err := s.Routes(ctx)
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if !reflect.DeepEqual(got, routes) {
		t.Fatalf("Routes = %#v, want %#v", got, routes)
	}

	// Last write wins.
	inspectors := []Inspector{{Name: "Szabó Éva", Code: "E-1"}}
	if err := s.SaveInspectors(ctx, []Inspector{{Name: "old", Code: "0"}}); err != nil {
		t.Fatalf("SaveInspectors: %v", err)
	}
	if err := s.SaveInspectors(ctx, inspectors); err != nil {
		t.Fatalf("SaveInspectors: %v", err)
	}
	gotInspectors, err := s.Inspectors(ctx)
	if err != nil {
		t.Fatalf("Inspectors: %v", err)
	}
	if !reflect.DeepEqual(gotInspectors, inspectors) {
		t.Fatalf("Inspectors = %#v, want %#v", gotInspectors, inspectors)
	}
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SetSourceFile(ctx, KindDrivers, "/tmp/drivers.csv"); err != nil {
		t.Fatalf("SetSourceFile: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	path, err := s.SourceFile(ctx, KindDrivers)
	if err != nil {
		t.Fatalf("SourceFile: %v", err)
	}
	if path != "/tmp/drivers.csv" {
		t.Fatalf("SourceFile = %q", path)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("routes"); err != nil || k != KindRoutes {
		t.Fatalf("ParseKind(routes) = %q, %v", k, err)
	}
	if _, err := ParseKind("buses"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseKind(buses) error = %v, want ErrUnknownKind", err)
	}
}

func TestImporter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	driversPath := filepath.Join(dir, "drivers.csv")
	if err := os.WriteFile(driversPath, []byte("Kiss Péter,1234\nbroken\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	im := NewImporter(s, nil)
	if err := im.Remember(ctx, KindDrivers, driversPath); err != nil {
		t.Fatalf("Remember: %v", err)
	}

	counts, err := im.Import(ctx)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("counts = %v, want only drivers", counts)
	}
	if got := counts[KindDrivers]; got.Records != 1 || got.Skipped != 1 {
		t.Fatalf("drivers stats = %+v", got)
	}
	drivers, err := s.Drivers(ctx)
	if err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	if len(drivers) != 1 || drivers[0].Code != "1234" {
		t.Fatalf("Drivers = %#v", drivers)
	}

	// A changed file replaces the stored list on the next import.
	if err := os.WriteFile(driversPath, []byte("Nagy Anna,5678\nKiss Péter,1234\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := im.Import(ctx); err != nil {
		t.Fatalf("second Import: %v", err)
	}
	drivers, _ = s.Drivers(ctx)
	if len(drivers) != 2 {
		t.Fatalf("Drivers after reimport = %#v", drivers)
	}
}

func TestImporterMissingFile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	im := NewImporter(s, nil)
	if err := im.Remember(ctx, KindRoutes, filepath.Join(t.TempDir(), "missing.csv")); err != nil {
		t.Fatal(err)
	}
	if _, err := im.Import(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Import error = %v, want not-exist", err)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T) (cfgPath, outDir, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	outDir = filepath.Join(dir, "out")
	dataDir = filepath.Join(dir, "data")
	cfgPath = writeFile(t, dir, "config.yaml",
		"output_dir: "+outDir+"\ndata_dir: "+dataDir+"\nlog_level: error\n")
	return cfgPath, outDir, dataDir
}

func TestImportAndLines(t *testing.T) {
	cfg, _, _ := testConfig(t)
	src := t.TempDir()
	drivers := writeFile(t, src, "drivers.csv", "Nagy Anna,5678\nbroken line\n")
	routes := writeFile(t, src, "routes.csv", "7,Astoria\n7,Keleti pályaudvar\n100,Blaha Lujza tér\n")

	out, err := execute(t, "--config", cfg, "import", "--drivers", drivers, "--routes", routes)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	for _, want := range []string{"drivers: 1 records (1 lines skipped)", "routes: 3 records"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	out, err = execute(t, "--config", cfg, "lines")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if out != "7\n100\n" {
		t.Errorf("lines = %q", out)
	}

	out, err = execute(t, "--config", cfg, "lines", "7")
	if err != nil {
		t.Fatalf("lines 7: %v", err)
	}
	if out != "Astoria\nKeleti pályaudvar\n" {
		t.Errorf("locations = %q", out)
	}

	// A run without flags reimports the remembered files.
	if err := os.WriteFile(drivers, []byte("Nagy Anna,5678\nKovács Béla,1111\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "--config", cfg, "import")
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if !strings.Contains(out, "drivers: 2 records\n") {
		t.Errorf("reimport output = %q", out)
	}
}

func TestRenderWritesPDF(t *testing.T) {
	cfg, outDir, _ := testConfig(t)
	form := writeFile(t, t.TempDir(), "form.yaml", sampleForm)

	// The structured report is named after the inspector, the classic one
	// after the driver, whose code the form leaves empty here.
	codes := map[string]string{"structured": "_E-12", "classic": ""}
	for _, tpl := range []string{"structured", "classic"} {
		out, err := execute(t, "--config", cfg, "render", "--template", tpl, form)
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		path := strings.TrimSpace(out)
		if filepath.Dir(path) != outDir {
			t.Errorf("%s: path %q not in %q", tpl, path, outDir)
		}
		name := filepath.Base(path)
		if code := codes[tpl]; code != "" && !strings.Contains(name, code) {
			t.Errorf("%s: name %q does not carry %q", tpl, name, code)
		}
		if tpl == "classic" && strings.Contains(name, "E-12") {
			t.Errorf("classic: name %q carries the inspector code", name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-1.7")) {
			t.Errorf("%s: not a PDF: %q", tpl, data[:min(len(data), 16)])
		}
	}
}

func TestRenderRejectsBadTemplate(t *testing.T) {
	cfg, _, _ := testConfig(t)
	form := writeFile(t, t.TempDir(), "form.yaml", sampleForm)
	if _, err := execute(t, "--config", cfg, "render", "--template", "fancy", form); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}

func TestRenderMissingForm(t *testing.T) {
	cfg, _, _ := testConfig(t)
	if _, err := execute(t, "--config", cfg, "render", filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected an error for a missing form")
	}
}

package framework

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `key: council-pct
name: Council Percentage Scheme
model: percentage
bands:
  - min: 80
    label: Pass
  - min: 0
    label: Fail
sections:
  - key: general
    label: General
    items:
      - code: GEN-01
        text: Premises clean
      - code: GEN-02
        text: Records available
        has_evidence: true
`

// --- Parse ---

func TestParse_ValidFramework(t *testing.T) {
	fw, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fw.Key != "council-pct" || fw.Model != ModelPercentage {
		t.Errorf("parsed %q/%q", fw.Key, fw.Model)
	}
	it, ok := fw.Item("GEN-02")
	if !ok || !it.HasEvidence {
		t.Errorf("Item(GEN-02) = %+v, %v, want evidence toggle", it, ok)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("key: [unclosed")); err == nil {
		t.Error("Parse accepted malformed yaml")
	}
}

func TestParse_FailsValidation(t *testing.T) {
	if _, err := Parse([]byte("key: bad\nmodel: percentage\n")); err == nil {
		t.Error("Parse accepted a framework with no sections")
	}
}

// --- LoadDir ---

func TestLoadDir_MissingDirIsNotAnError(t *testing.T) {
	loaded, errs := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if len(loaded) != 0 || len(errs) != 0 {
		t.Errorf("LoadDir on missing dir = %v, %v", loaded, errs)
	}
}

func TestLoadDir_SkipsBadFilesLoadsRest(t *testing.T) {
	dir := t.TempDir()
	good := []byte(`key: loader-test
name: Loader Test
model: percentage
bands:
  - min: 0
    label: Any
sections:
  - key: s
    label: S
    items:
      - code: S-01
        text: Only item
`)
	if err := os.WriteFile(filepath.Join(dir, "good.yaml"), good, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, errs := LoadDir(dir)
	if len(loaded) != 1 || loaded[0] != "loader-test" {
		t.Errorf("loaded = %v, want [loader-test]", loaded)
	}
	if len(errs) != 1 {
		t.Errorf("errs = %v, want exactly one", errs)
	}
	if _, err := Get("loader-test"); err != nil {
		t.Errorf("loaded framework not registered: %v", err)
	}
}

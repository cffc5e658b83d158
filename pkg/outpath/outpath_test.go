package outpath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveFirstRun(t *testing.T) {
	dir := t.TempDir()
	paths, err := Resolve(dir, "lambda")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if paths.Name != "lambdaROI1" {
		t.Errorf("Expected lambdaROI1, got %s", paths.Name)
	}
	if paths.Preview != filepath.Join(dir, "MAX_lambdaROI1.png") {
		t.Errorf("unexpected preview path %s", paths.Preview)
	}
	if paths.Raster != filepath.Join(dir, "Hyperstack_lambdaROI1.png") {
		t.Errorf("unexpected raster path %s", paths.Raster)
	}
	if paths.RawCSV != filepath.Join(dir, "lambdaROI1.csv") || paths.NormCSV != filepath.Join(dir, "lambdaROI1_norm.csv") {
		t.Errorf("unexpected csv paths %s, %s", paths.RawCSV, paths.NormCSV)
	}
}

// TestResolveSkipsTakenRuns verifies that any existing artifact of a run
// number makes the resolver move on
func TestResolveSkipsTakenRuns(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{
		For(dir, "lambda", 1).Preview,
		For(dir, "lambda", 2).NormCSV,
	} {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
	}

	paths, err := Resolve(dir, "lambda")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if paths.Name != "lambdaROI3" {
		t.Errorf("Expected lambdaROI3, got %s", paths.Name)
	}

	// Another stack in the same folder is unaffected
	other, _ := Resolve(dir, "other")
	if other.Name != "otherROI1" {
		t.Errorf("Expected otherROI1, got %s", other.Name)
	}
}

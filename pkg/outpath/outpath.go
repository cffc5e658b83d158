// Package outpath picks non-colliding file names for the artifacts of a run.
package outpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths are the artifacts written by one run
type Paths struct {
	// Name is the shared stem, <title>ROI<n>
	Name string

	// Preview is the projection with the selected line
	Preview string

	// Raster is the hyperspectral image
	Raster string

	// RawCSV and NormCSV are the numeric exports
	RawCSV  string
	NormCSV string
}

// All returns every path in the set
func (p Paths) All() []string {
	return []string{p.Preview, p.Raster, p.RawCSV, p.NormCSV}
}

// For returns the artifact names of run n of title inside dir
func For(dir, title string, n int) Paths {
	name := fmt.Sprintf("%sROI%d", title, n)
	return Paths{
		Name:    name,
		Preview: filepath.Join(dir, "MAX_"+name+".png"),
		Raster:  filepath.Join(dir, "Hyperstack_"+name+".png"),
		RawCSV:  filepath.Join(dir, name+".csv"),
		NormCSV: filepath.Join(dir, name+"_norm.csv"),
	}
}

// Resolve returns the artifact names for the lowest n >= 1 such that none
// of them exists yet.
func Resolve(dir, title string) (Paths, error) {
	for n := 1; ; n++ {
		paths := For(dir, title, n)
		taken, err := anyExists(paths.All())
		if err != nil {
			return Paths{}, err
		}
		if !taken {
			return paths, nil
		}
	}
}

func anyExists(paths []string) (bool, error) {
	for _, path := range paths {
		_, err := os.Stat(path)
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	return false, nil
}

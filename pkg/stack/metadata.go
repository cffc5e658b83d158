package stack

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the default name of the metadata sidecar inside a stack directory
const MetadataFile = "metadata.yaml"

// wavelengthKey is the metadata key of a channel's emission wavelength
const wavelengthKey = "Information|Image|Channel|EmissionWavelength #%02d"

// ErrMissingWavelength is returned when a channel has no usable emission wavelength
var ErrMissingWavelength = errors.New("stack: couldn't find the emission wavelength in the metadata")

// WavelengthKey returns the metadata key for a 1-based channel
func WavelengthKey(channel int) string {
	return fmt.Sprintf(wavelengthKey, channel)
}

// LoadWavelengths reads the emission wavelength of channels 1..channels
// from a YAML metadata file.
func LoadWavelengths(path string, channels int) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading metadata file: %w", err)
	}
	return ParseWavelengths(data, channels)
}

// ParseWavelengths extracts per-channel wavelengths in nm from YAML
// metadata. Numeric values are truncated to whole nanometres. A missing
// or non-numeric entry is an error; no default is substituted.
func ParseWavelengths(data []byte, channels int) ([]int, error) {
	props := map[string]any{}
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("error parsing metadata: %w", err)
	}

	wavelengths := make([]int, 0, channels)
	for c := 1; c <= channels; c++ {
		key := WavelengthKey(c)
		raw, ok := props[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingWavelength, key)
		}
		wl, err := toWavelength(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMissingWavelength, key, err)
		}
		wavelengths = append(wavelengths, wl)
	}
	return wavelengths, nil
}

func toWavelength(raw any) (int, error) {
	var f float64
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported value %v", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return int(f), nil
}

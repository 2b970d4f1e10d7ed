package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/healthpremium/backend/internal/domain"
)

// Artifact file names inside the artifacts directory
const (
	ModelYoungFile  = "model_young.json"
	ModelRestFile   = "model_rest.json"
	ScalerYoungFile = "scaler_young.json"
	ScalerRestFile  = "scaler_rest.json"
)

// Bundle holds the pretrained artifacts for both age bands.
// Loaded once at startup and read-only afterwards.
type Bundle struct {
	ModelYoung  *LinearModel
	ModelRest   *LinearModel
	ScalerYoung *ScalerBundle
	ScalerRest  *ScalerBundle
}

// Load reads all four artifacts from dir. Compatibility between the
// artifacts and the feature schema is not checked here; mismatches
// surface at prediction time.
func Load(dir string) (*Bundle, error) {
	b, err := LoadScalers(dir)
	if err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ModelYoungFile), &b.ModelYoung); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ModelRestFile), &b.ModelRest); err != nil {
		return nil, err
	}
	if b.ModelYoung == nil || b.ModelRest == nil {
		return nil, fmt.Errorf("artifact: empty model in %s", dir)
	}
	return b, nil
}

// LoadScalers reads only the scaling parameters, for deployments whose
// models are served remotely
func LoadScalers(dir string) (*Bundle, error) {
	var b Bundle
	if err := readJSON(filepath.Join(dir, ScalerYoungFile), &b.ScalerYoung); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ScalerRestFile), &b.ScalerRest); err != nil {
		return nil, err
	}
	if b.ScalerYoung == nil || b.ScalerRest == nil {
		return nil, fmt.Errorf("artifact: empty scaler in %s", dir)
	}
	return &b, nil
}

// Models returns the young and rest models as domain.Model
func (b *Bundle) Models() (young, rest domain.Model) {
	return b.ModelYoung, b.ModelRest
}

// ScalingParams returns the young and rest scaling parameters
func (b *Bundle) ScalingParams() (young, rest domain.ScalingParams) {
	return b.ScalerYoung.Params(), b.ScalerRest.Params()
}

func readJSON(path string, dst any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("artifact: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, dst); err != nil {
		return fmt.Errorf("artifact: failed to decode %s: %w", path, err)
	}
	return nil
}

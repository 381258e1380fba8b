package forecast

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Model predicts a monthly expense from a feature vector.
type Model interface {
	Predict(features FeatureVector) (float64, error)
}

// LinearModel is a linear regression exported as YAML:
//
//	intercept: 1200.5
//	coefficients:
//	  monthly_income_inr: 0.62
//	  credit_score: -1.4
//
// Features without a coefficient contribute nothing.
type LinearModel struct {
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// LoadLinearModel reads and validates a LinearModel file.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- configured model path
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var model LinearModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model file %s: %w", path, err)
	}
	return &model, nil
}

// Validate rejects coefficients for unknown features and non-finite weights.
func (m *LinearModel) Validate() error {
	known := make(map[string]bool, len(FeatureNames))
	for _, name := range FeatureNames {
		known[name] = true
	}
	if !isFinite(m.Intercept) {
		return fmt.Errorf("intercept is not finite")
	}
	if len(m.Coefficients) == 0 {
		return fmt.Errorf("model has no coefficients")
	}
	for name, w := range m.Coefficients {
		if !known[name] {
			return fmt.Errorf("unknown feature %q", name)
		}
		if !isFinite(w) {
			return fmt.Errorf("coefficient for %q is not finite", name)
		}
	}
	return nil
}

// Predict returns intercept + sum(coefficient*feature).
func (m *LinearModel) Predict(features FeatureVector) (float64, error) {
	total := m.Intercept
	for i, value := range features.Values() {
		total += m.Coefficients[FeatureNames[i]] * value
	}
	if !isFinite(total) {
		return 0, fmt.Errorf("prediction is not finite")
	}
	return total, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

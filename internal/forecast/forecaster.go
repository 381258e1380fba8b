package forecast

import (
	"fjacquet/finflow/internal/logging"
)

// DefaultHeuristicRatio is the share of income predicted without a model.
const DefaultHeuristicRatio = 0.7

// Source names where a prediction came from.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// Forecaster wraps an optional Model with the income heuristic.
type Forecaster struct {
	model  Model
	ratio  float64
	logger logging.Logger
}

// NewForecaster creates a Forecaster. A nil model always uses the heuristic.
func NewForecaster(model Model, ratio float64, logger logging.Logger) *Forecaster {
	if ratio <= 0 {
		ratio = DefaultHeuristicRatio
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Forecaster{model: model, ratio: ratio, logger: logger}
}

// LoadForecaster loads the linear model at path. A missing path or a load
// failure degrades to the heuristic instead of failing startup.
func LoadForecaster(path string, ratio float64, logger logging.Logger) *Forecaster {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if path == "" {
		logger.Info("No forecast model configured, using income heuristic")
		return NewForecaster(nil, ratio, logger)
	}

	model, err := LoadLinearModel(path)
	if err != nil {
		logger.WithError(err).Warn("Failed to load forecast model, using income heuristic",
			logging.F(logging.FieldFile, path))
		return NewForecaster(nil, ratio, logger)
	}

	logger.Info("Loaded forecast model", logging.F(logging.FieldFile, path))
	return NewForecaster(model, ratio, logger)
}

// HasModel reports whether a model is loaded.
func (f *Forecaster) HasModel() bool {
	return f.model != nil
}

// Predict returns the model's prediction, or income*ratio when no model is
// loaded or it fails.
func (f *Forecaster) Predict(features FeatureVector) (float64, Source) {
	if f.model != nil {
		value, err := f.model.Predict(features)
		if err == nil {
			return value, SourceModel
		}
		f.logger.WithError(err).Warn("Forecast model failed, using income heuristic")
	}
	return features.MonthlyIncome * f.ratio, SourceHeuristic
}

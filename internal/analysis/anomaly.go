package analysis

import (
	"fmt"
	"math"
	"strconv"

	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/textutils"
)

// Detector defaults.
const (
	DefaultMinExpenses = 4
	DefaultSigma       = 2.0
	DefaultFloor       = 1000.0
)

// Detector flags expenses far above the typical expense. An expense is
// anomalous when its magnitude exceeds both mean+Sigma*stddev and Floor.
type Detector struct {
	Exclusions  []string
	MinExpenses int
	Sigma       float64
	Floor       float64
}

// NewDetector returns a Detector with the default gate.
func NewDetector(exclusions []string) Detector {
	return Detector{
		Exclusions:  exclusions,
		MinExpenses: DefaultMinExpenses,
		Sigma:       DefaultSigma,
		Floor:       DefaultFloor,
	}
}

// Detect returns one alert per anomalous expense, in input order.
func (d Detector) Detect(txs []models.Transaction) []models.AnomalyAlert {
	var expenses []models.Transaction
	for _, tx := range txs {
		if tx.IsExpense() && !textutils.ContainsAnyFold(tx.Description, d.Exclusions) {
			expenses = append(expenses, tx)
		}
	}

	minExpenses := d.MinExpenses
	if minExpenses < 2 {
		minExpenses = DefaultMinExpenses
	}
	if len(expenses) < minExpenses {
		return nil
	}

	magnitudes := make([]float64, len(expenses))
	for i, tx := range expenses {
		magnitudes[i] = tx.Magnitude().InexactFloat64()
	}
	mean, stddev := meanStdDev(magnitudes)
	if stddev == 0 {
		return nil
	}

	var alerts []models.AnomalyAlert
	threshold := mean + d.Sigma*stddev
	for i, tx := range expenses {
		value := magnitudes[i]
		if value <= threshold || value <= d.Floor {
			continue
		}
		multiple := currencyutils.Round1((value - mean) / stddev)
		alerts = append(alerts, models.AnomalyAlert{
			Date:        tx.DateString(),
			Description: tx.Description,
			Reason:      Reason(multiple),
			Amount:      value,
			Multiple:    multiple,
		})
	}
	return alerts
}

// Reason renders the alert text for a standard-deviation multiple.
func Reason(multiple float64) string {
	return fmt.Sprintf("Spending is %sx higher than typical.", strconv.FormatFloat(multiple, 'f', 1, 64))
}

// meanStdDev returns the mean and population standard deviation of values.
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	varianceSum := 0.0
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	return mean, math.Sqrt(varianceSum / float64(len(values)))
}

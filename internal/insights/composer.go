package insights

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"fjacquet/finflow/internal/analysis"
	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
)

// Composer defaults.
const (
	DefaultHighSavingsRate = 20.0
	DefaultTimeout         = 20 * time.Second
	DefaultTopExpenses     = 5
	DefaultTopMerchant     = "Retail"
)

var errEmptyAdvice = errors.New("advisor returned no usable suggestions")

// Picker returns a value in [0, n).
type Picker func(n int) int

// ComposerConfig tunes a Composer.
type ComposerConfig struct {
	Exclusions      []string
	Timeout         time.Duration
	HighSavingsRate float64
	Detector        analysis.Detector
}

// Composer combines advisor output, anomaly alerts and the savings rate. When
// the advisor is missing or fails, suggestions come from Templates.
type Composer struct {
	advisor Advisor
	cfg     ComposerConfig
	pick    Picker
	logger  logging.Logger
}

// NewComposer creates a Composer. advisor may be nil.
func NewComposer(advisor Advisor, cfg ComposerConfig, logger logging.Logger) *Composer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HighSavingsRate == 0 {
		cfg.HighSavingsRate = DefaultHighSavingsRate
	}
	if cfg.Detector.Sigma == 0 {
		cfg.Detector = analysis.NewDetector(cfg.Exclusions)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Composer{advisor: advisor, cfg: cfg, pick: rand.IntN, logger: logger}
}

// WithPicker replaces the random source used to choose templates.
func (c *Composer) WithPicker(p Picker) *Composer {
	if p != nil {
		c.pick = p
	}
	return c
}

// HasAdvisor reports whether a live advisor is configured.
func (c *Composer) HasAdvisor() bool {
	return c.advisor != nil
}

type spendingContext struct {
	months         float64
	monthlyExpense float64
	surplus        float64
	savingsRate    float64
	top            []models.Transaction
}

func (c *Composer) spending(profile models.Profile, txs []models.Transaction) spendingContext {
	filtered := analysis.ExcludeDescriptions(txs, c.cfg.Exclusions)
	months := analysis.NumMonths(txs)
	monthly := analysis.MonthlyRate(models.TotalExpenses(filtered).InexactFloat64(), months)
	return spendingContext{
		months:         months,
		monthlyExpense: monthly,
		surplus:        profile.MonthlyIncome - monthly,
		savingsRate:    analysis.SavingsRate(profile.MonthlyIncome, monthly),
		top:            analysis.TopExpenses(filtered, DefaultTopExpenses),
	}
}

// Compose builds the insight result for txs. It never fails: advisor errors
// are logged and replaced by template suggestions.
func (c *Composer) Compose(ctx context.Context, profile models.Profile, txs []models.Transaction) models.InsightResult {
	profile = profile.WithDefaults()
	sc := c.spending(profile, txs)

	suggestions, err := c.advise(ctx, profile, sc)
	if err != nil {
		c.logger.WithError(err).Warn("Falling back to template suggestions",
			logging.F("transactions", len(txs)))
		suggestions = c.fallback(profile, sc)
	}

	alerts := c.cfg.Detector.Detect(txs)
	if alerts == nil {
		alerts = []models.AnomalyAlert{}
	}

	months := analysis.NumMonths(txs)
	overall := analysis.MonthlyRate(models.TotalExpenses(txs).InexactFloat64(), months)

	return models.InsightResult{
		Suggestions: suggestions,
		Alerts:      alerts,
		SavingsRate: analysis.SavingsRate(profile.MonthlyIncome, overall),
	}
}

func (c *Composer) advise(ctx context.Context, profile models.Profile, sc spendingContext) ([]string, error) {
	if c.advisor == nil {
		return nil, errors.New("no advisor configured")
	}

	prompt := BuildPrompt(PromptContext{
		Profile:        profile,
		Months:         sc.months,
		MonthlyExpense: sc.monthlyExpense,
		Surplus:        sc.surplus,
		SavingsRate:    sc.savingsRate,
		TopExpenses:    sc.top,
	})

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	text, err := c.advisor.Generate(callCtx, prompt)
	if err != nil {
		return nil, err
	}
	suggestions := ParseSuggestions(text)
	if len(suggestions) == 0 {
		return nil, errEmptyAdvice
	}
	c.logger.Debug("Advisor produced suggestions", logging.F("count", len(suggestions)))
	return suggestions, nil
}

// fallback picks one template from the savings bucket and, when the profile
// carries an EMI, one debt template.
func (c *Composer) fallback(profile models.Profile, sc spendingContext) []string {
	topMerchant := DefaultTopMerchant
	topPerMonth := 0.0
	if len(sc.top) > 0 {
		topMerchant = sc.top[0].Description
		topPerMonth = analysis.MonthlyRate(sc.top[0].Magnitude().InexactFloat64(), sc.months)
	}

	values := map[string]string{
		"rate":         strconv.FormatFloat(sc.savingsRate, 'f', 1, 64),
		"surplus":      currencyutils.FormatGrouped(sc.surplus),
		"top_merchant": topMerchant,
		"top_amt":      currencyutils.FormatGrouped(topPerMonth),
		"potential":    currencyutils.FormatGrouped(topPerMonth * 0.2),
		"loan_rate":    strconv.FormatFloat(profile.InterestRate, 'f', -1, 64),
		"emi_ratio":    strconv.FormatFloat(analysis.EMIRatio(profile.MonthlyEMI, profile.MonthlyIncome), 'f', 1, 64),
	}

	bucket := BucketLowSavings
	if sc.savingsRate >= c.cfg.HighSavingsRate {
		bucket = BucketHighSavings
	}

	suggestions := []string{Render(c.choose(bucket), values)}
	if profile.MonthlyEMI > 0 {
		suggestions = append(suggestions, Render(c.choose(BucketDebtHeavy), values))
	}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

func (c *Composer) choose(bucket Bucket) string {
	options := Templates[bucket]
	i := c.pick(len(options))
	if i < 0 || i >= len(options) {
		i = 0
	}
	return options[i]
}

// Package container provides dependency injection for the finflow application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/finflow/internal/analysis"
	"fjacquet/finflow/internal/categorizer"
	"fjacquet/finflow/internal/common"
	"fjacquet/finflow/internal/config"
	"fjacquet/finflow/internal/forecast"
	"fjacquet/finflow/internal/insights"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/pdfparser"
	"fjacquet/finflow/internal/report"
	"fjacquet/finflow/internal/service"
	"fjacquet/finflow/internal/statement"
	"fjacquet/finflow/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	categories *store.CategoryStore
	tags       categorizer.TagMap
	store      store.Store
	advisor    insights.Advisor
	composer   *insights.Composer
	forecaster *forecast.Forecaster
	parser     *statement.Parser
	pdf        *pdfparser.Adapter
	service    *service.Service
	delimiter  rune

	closers []func()
}

// NewContainer creates and wires all application dependencies with a logger
// built from cfg.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	return NewContainerWithLogger(ctx, cfg, logger)
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	c := &Container{logger: logger, config: cfg}

	delimiter, err := common.ParseDelimiter(cfg.Export.Delimiter)
	if err != nil {
		return nil, err
	}
	c.delimiter = delimiter

	c.categories = store.NewCategoryStore(cfg.Categories.File, logger)
	c.tags, err = categorizer.LoadTagMap(c.categories, logger)
	if err != nil {
		return nil, err
	}

	rollover, err := cfg.RolloverMonth()
	if err != nil {
		return nil, err
	}
	years := statement.YearRule{BaseYear: cfg.StatementBaseYear(time.Now()), RolloverMonth: rollover}
	c.parser = statement.NewParser(statement.NewAssembler(c.tags, years), cfg.Parser.Workers, logger)

	extractor, err := pdfparser.NewExtractor(cfg.Parser.Extractor)
	if err != nil {
		return nil, err
	}
	c.pdf = pdfparser.NewAdapter(extractor, c.parser, logger)

	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.initAdvisor(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.composer = insights.NewComposer(c.advisor, insights.ComposerConfig{
		Exclusions:      cfg.Analysis.ExcludedDescriptions,
		Timeout:         cfg.AITimeout(),
		HighSavingsRate: cfg.Analysis.HighSavingsRate,
		Detector: analysis.Detector{
			Exclusions:  cfg.Analysis.ExcludedDescriptions,
			MinExpenses: cfg.Analysis.MinExpenses,
			Sigma:       cfg.Analysis.AnomalySigma,
			Floor:       cfg.Analysis.AnomalyFloor,
		},
	}, logger)

	c.forecaster = forecast.LoadForecaster(cfg.Forecast.ModelFile, cfg.Forecast.HeuristicRatio, logger)
	c.service = service.New(c.store, c.pdf, c.parser, c.composer, c.forecaster, logger)

	logger.Info("Container initialized successfully",
		logging.F("category_tags", c.tags.Len()),
		logging.F("ai_enabled", c.advisor != nil),
		logging.F("forecast_model", c.forecaster.HasModel()),
		logging.F(logging.FieldExtractor, cfg.Parser.Extractor))

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	if c.config.Database.URL == "" {
		c.logger.Info("No database configured, using in-memory store")
		c.store = store.NewMemoryStore()
		return nil
	}

	pg, err := store.NewPostgresStore(ctx, c.config.Database.URL, c.config.Database.MaxConns, c.logger)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, pg.Close)
	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	c.store = pg
	return nil
}

func (c *Container) initAdvisor(ctx context.Context) error {
	if !c.config.AI.Enabled {
		c.logger.Info("AI advice disabled, using template suggestions")
		return nil
	}

	advisor, err := insights.NewGeminiAdvisor(ctx, c.config.AI.APIKey, c.config.AI.Model)
	if err != nil {
		return fmt.Errorf("failed to create advisor: %w", err)
	}
	c.closers = append(c.closers, func() {
		if err := advisor.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close advisor")
		}
	})
	c.advisor = advisor
	c.logger.Info("AI advice enabled", logging.F(logging.FieldModel, advisor.Model()))
	return nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTagMap returns the category tag map used by the statement parser.
func (c *Container) GetTagMap() categorizer.TagMap {
	return c.tags
}

// GetStore returns the transaction store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetParser returns the statement text parser.
func (c *Container) GetParser() *statement.Parser {
	return c.parser
}

// GetPDFAdapter returns the PDF statement adapter.
func (c *Container) GetPDFAdapter() *pdfparser.Adapter {
	return c.pdf
}

// GetService returns the ingestion and analysis use cases.
func (c *Container) GetService() *service.Service {
	return c.service
}

// GetReportGenerator returns a report generator bound to the container's logger.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return report.NewReportGenerator(c.logger)
}

// Delimiter returns the configured export delimiter.
func (c *Container) Delimiter() rune {
	return c.delimiter
}

// HasAdvisor reports whether AI advice is enabled.
func (c *Container) HasAdvisor() bool {
	return c.advisor != nil
}

// Close releases the database pool and the advisor client.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	c.logger.Debug("Container closed")
}

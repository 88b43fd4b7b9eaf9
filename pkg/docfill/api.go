package docfill

import (
	"context"

	"go.uber.org/zap"
)

// Engine drives template expansion against a remote document. It holds
// no document state of its own: every pass reads fresh text from the
// client, because each applied batch invalidates previously computed
// offsets.
//
// An Engine may serve many concurrent fills of different documents; it
// must not be asked to fill the same working copy from two goroutines.
type Engine struct {
	client     DocumentClient
	config     *Config
	logger     *zap.SugaredLogger
	titleStyle TextStyle
}

// New creates an engine with the global configuration and logger.
func New(client DocumentClient) *Engine {
	return &Engine{
		client: client,
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}
}

// NewWithConfig creates an engine with a custom configuration. A nil
// config falls back to the global configuration.
func NewWithConfig(client DocumentClient, config *Config) *Engine {
	if config == nil {
		config = GetGlobalConfig()
	}
	return &Engine{
		client: client,
		config: config,
		logger: GetLogger(),
	}
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration. A
// nil config is ignored.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		if config != nil {
			e.config = config
		}
	}
}

// WithLogger returns an option that sets the engine's logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTitleStyle returns an option that sets supplemental style
// attributes merged into the mandatory bold when formatting labels and
// titles. Parse caller strings with ParseStyleAttributes.
func WithTitleStyle(style TextStyle) Option {
	return func(e *Engine) {
		e.titleStyle = style
	}
}

// NewWithOptions creates an engine with the specified options.
func NewWithOptions(client DocumentClient, opts ...Option) *Engine {
	engine := New(client)
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Fill runs the whole expansion pipeline against an existing document:
// loop expansion to a fixed point, scalar placeholder substitution,
// conditional blocks, and finally formatting re-application. The caller
// must own the document exclusively for the duration.
func (e *Engine) Fill(ctx context.Context, docID string, profile *Profile) error {
	placeholders, conditions, collections := Resolve(profile, e.config)

	if err := e.expandLoops(ctx, docID, collections); err != nil {
		return err
	}
	if err := e.substitutePlaceholders(ctx, docID, placeholders); err != nil {
		return err
	}
	if err := e.applyConditions(ctx, docID, conditions); err != nil {
		return err
	}

	return e.applyFormatting(ctx, docID, positionTitles(profile), e.titleStyle)
}

// positionTitles collects the literal position names whose formatting is
// re-applied after expansion.
func positionTitles(profile *Profile) []string {
	if profile == nil {
		return nil
	}
	titles := make([]string, 0, len(profile.WorkExperience))
	for _, entry := range profile.WorkExperience {
		if entry.Position != "" {
			titles = append(titles, entry.Position)
		}
	}
	return titles
}

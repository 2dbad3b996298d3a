package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/AmerThamer/bkv-inspector-app/observability"
	"github.com/AmerThamer/bkv-inspector-app/output"
	"github.com/AmerThamer/bkv-inspector-app/writer"
)

// Generator renders a report, serializes it and stores the file.
type Generator struct {
	renderer *Renderer
	writer   writer.Writer
	cfg      writer.Config
	dir      string
	now      func() time.Time
	logger   observability.Logger
	tracer   observability.Tracer
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithWriter replaces the PDF writer.
func WithWriter(w writer.Writer) GeneratorOption {
	return func(g *Generator) { g.writer = w }
}

// WithWriterConfig sets compression and determinism of the output.
func WithWriterConfig(cfg writer.Config) GeneratorOption {
	return func(g *Generator) { g.cfg = cfg }
}

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(l observability.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// WithTracer sets the tracer wrapped around each stage.
func WithTracer(t observability.Tracer) GeneratorOption {
	return func(g *Generator) { g.tracer = t }
}

// WithGeneratorClock replaces time.Now for file names and page content.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator stores reports rendered by r in dir.
func NewGenerator(r *Renderer, dir string, opts ...GeneratorOption) *Generator {
	g := &Generator{
		renderer: r,
		writer:   writer.New(),
		cfg:      writer.Config{Version: writer.PDF17, Compression: 6},
		dir:      dir,
		now:      time.Now,
		logger:   observability.NopLogger{},
		tracer:   observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders data and stores it as <dir>/<yyyyMMdd_HHmmss>[_code].pdf,
// where code is the inspector's or the driver's as the template chooses.
// It returns the path of the written file, or "" and an error.
func (g *Generator) Generate(ctx context.Context, data ReportData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	now := g.now()

	_, span := g.tracer.StartSpan(ctx, observability.SpanRender)
	res, err := g.renderer.render(data, now)
	if err != nil {
		span.SetError(err)
		span.Finish()
		return "", fmt.Errorf("render report: %w", err)
	}
	span.SetTag(observability.MetricPages, res.Pages)
	span.Finish()

	wctx, span := g.tracer.StartSpan(ctx, observability.SpanWrite)
	var buf bytes.Buffer
	if err := g.writer.Write(wctx, res.Document, &buf, g.cfg); err != nil {
		span.SetError(err)
		span.Finish()
		return "", fmt.Errorf("write report: %w", err)
	}
	span.SetTag(observability.MetricBytes, buf.Len())
	span.Finish()

	_, span = g.tracer.StartSpan(ctx, observability.SpanPersist)
	path, err := output.Persist(buf.Bytes(), g.dir, output.FileName(now, g.renderer.template.FileNameCode(data)))
	if err != nil {
		span.SetError(err)
		span.Finish()
		return "", err
	}
	span.SetTag(observability.MetricOutput, path)
	span.Finish()

	g.logger.Info("report generated",
		observability.String("template", g.renderer.template.Name),
		observability.Int("pages", res.Pages),
		observability.Int("bytes", buf.Len()),
		observability.String("path", path))
	return path, nil
}

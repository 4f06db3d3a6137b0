package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Generator produces report files.
type Generator interface {
	// Render builds and renders a report without storing it.
	Render(ctx context.Context, req Request) (*Rendered, error)

	// Generate builds, renders and stores a report.
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Rendered is a report file held in memory.
type Rendered struct {
	Document    *Document
	Format      Format
	Name        string
	ContentType string
	Body        []byte
}

type generator struct {
	builder *Builder
	sink    Sink
	logger  zerolog.Logger
}

// NewGenerator creates a Generator storing files in sink.
func NewGenerator(builder *Builder, sink Sink, logger zerolog.Logger) Generator {
	return &generator{
		builder: builder,
		sink:    sink,
		logger:  logger.With().Str("component", "report-generator").Logger(),
	}
}

func (g *generator) Render(ctx context.Context, req Request) (*Rendered, error) {
	t, err := ParseType(string(req.Type))
	if err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = FormatPDF
	}
	format, err = ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	renderer, err := RendererFor(format)
	if err != nil {
		return nil, err
	}

	doc, err := g.builder.Build(ctx, t, req.Range())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		g.logger.Error().Err(err).Str("type", string(t)).Str("format", string(format)).Msg("failed to render report")
		return nil, fmt.Errorf("failed to render %s report as %s: %w", t, format, err)
	}

	return &Rendered{
		Document:    doc,
		Format:      format,
		Name:        doc.FileName(renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (g *generator) Generate(ctx context.Context, req Request) (*Result, error) {
	out, err := g.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	location, err := g.sink.Store(ctx, out.Name, out.ContentType, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	g.logger.Info().
		Str("report_id", out.Document.ID.String()).
		Str("type", string(out.Document.Type)).
		Str("location", location).
		Int("bytes", len(out.Body)).
		Msg("report generated")

	return &Result{
		ID:          out.Document.ID,
		Type:        out.Document.Type,
		Format:      out.Format,
		Name:        out.Name,
		Location:    location,
		Size:        len(out.Body),
		GeneratedAt: out.Document.GeneratedAt,
	}, nil
}

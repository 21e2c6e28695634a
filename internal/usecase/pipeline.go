package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/extract"
	"LessonAnalyzer/internal/ports"
	"LessonAnalyzer/internal/prompt"
	"LessonAnalyzer/internal/vibe"
)

// PipelineDeps wires all driven adapters into the analysis pipeline.
type PipelineDeps struct {
	Client   ports.ModelClient
	Preparer ports.ContentPreparer
	Vibes    *vibe.Catalog
	Logger   *slog.Logger
}

// Pipeline implements the analysis request workflow. It holds no per-request
// state and is safe for concurrent use.
type Pipeline struct {
	client   ports.ModelClient
	preparer ports.ContentPreparer
	vibes    *vibe.Catalog
	logger   *slog.Logger
}

var _ ports.Analyzer = (*Pipeline)(nil)

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		client:   deps.Client,
		preparer: deps.Preparer,
		vibes:    deps.Vibes,
		logger:   deps.Logger,
	}
}

// Analyze validates the input, asks the model for an analysis and falls back
// to a fixed template when the model is unusable or its answer unparsable.
// Only validation, configuration, terminal upstream and unexpected errors are
// returned.
func (p *Pipeline) Analyze(ctx context.Context, in domain.RawInput) (domain.AnalysisResult, error) {
	req, err := Validate(in)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if p.client == nil {
		return domain.AnalysisResult{}, fmt.Errorf("model client missing: %w", domain.ErrConfiguration)
	}

	out, err := p.client.Complete(ctx, p.buildPrompt(req))
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("call model: %w", err)
	}

	switch {
	case out.Failure != nil:
		return p.handleFailure(req, *out.Failure)
	case out.Success != nil:
		return p.handleSuccess(req, out.Success.Text), nil
	default:
		return domain.AnalysisResult{}, errors.New("model client returned an empty outcome")
	}
}

func (p *Pipeline) buildPrompt(req domain.AnalysisRequest) prompt.Prompt {
	in := prompt.Input{Content: req.Content, Vibe: req.Vibe}

	if p.preparer != nil {
		profile := p.preparer.Prepare(req.Content)
		in.Content = profile.Text
		in.Language = profile.Language
	}

	if v, err := p.vibes.Resolve(req.Vibe); err == nil {
		in.VibeDescription = v.Description
	} else {
		p.debug("vibe outside catalog", "vibe", req.Vibe)
	}

	return prompt.Build(in)
}

func (p *Pipeline) handleFailure(req domain.AnalysisRequest, f domain.Failure) (domain.AnalysisResult, error) {
	verdict := Classify(f)

	args := []any{"status", f.Status, "verdict", verdict.String()}
	if f.Body != nil {
		args = append(args, "error_type", f.Body.Type, "error_message", f.Body.Message)
	}
	p.warn("model call failed", args...)

	if verdict == VerdictRecoverable {
		p.info("model unavailable, returning demo analysis", "vibe", req.Vibe)
		return Normalize(DemoFallback(req), req), nil
	}
	return domain.AnalysisResult{}, TerminalError(f)
}

func (p *Pipeline) handleSuccess(req domain.AnalysisRequest, text string) domain.AnalysisResult {
	result, err := extract.Analysis(text)
	if err != nil {
		p.warn("model answer not parsable, returning generic analysis", "error", err, "answer_bytes", len(text))
		return Normalize(GenericFallback(req), req)
	}
	return Normalize(result, req)
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

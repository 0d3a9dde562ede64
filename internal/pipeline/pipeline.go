package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/htmlmend/internal/document"
	"github.com/nao1215/htmlmend/internal/model"
)

// Job is the state shared by the steps of a run.
type Job struct {
	// Doc is the loaded document. StripStep saves through it.
	Doc *document.Document

	// Text is the current content. The strip step replaces it.
	Text string

	// Report accumulates the step results.
	Report *model.MendReport
}

// NewJob creates a job for doc.
func NewJob(doc *document.Document) *Job {
	return &Job{
		Doc:    doc,
		Text:   doc.Text,
		Report: model.NewMendReport(doc.Path),
	}
}

// Step defines the interface that all pipeline steps implement.
type Step interface {
	// Do executes the step. A returned error is recorded in the report.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging and the report.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps running later steps after a failure.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run the remaining steps
// when one fails. A failed strip then leaves the text unchanged for the
// diagnostic steps.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence.
// It returns the first step error unless continueOnError is set, and
// ctx.Err() when cancelled between steps. Failures are always recorded
// in job.Report.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			return err
		}

		p.logger.Debug("executing step", "step", step.Name(), "file", job.Doc.Path)

		job.Report.Performed = append(job.Report.Performed, step.Name())
		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "file", job.Doc.Path, "error", err)

			job.Report.Failures = append(job.Report.Failures, model.StepFailure{
				Step:    step.Name(),
				Message: err.Error(),
			})
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

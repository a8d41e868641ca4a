// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"codeberg.org/localepipe/localepipe/locales"
	"codeberg.org/localepipe/localepipe/process"
)

var (
	ErrNoStages     = errors.New("no stages requested")
	ErrUnknownStage = errors.New("unknown stage")
	ErrNoRunner     = errors.New("no process runner configured")
)

// Stage is one step of a run. Stages always execute in declaration order.
type Stage int

const (
	StageExtract Stage = iota
	StageInit
	StageUpdate
	StageCompile
	StageReport
)

var stageNames = [...]string{"extract", "init", "update", "compile", "report"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}

	return stageNames[s]
}

// ParseStage returns the Stage named name.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownStage, name)
}

// State is where a run currently is.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateInitializing
	StateUpdating
	StateCompiling
	StateReporting
	StateDone
	StateFailed
)

var stateNames = [...]string{"idle", "extracting", "initializing", "updating", "compiling", "reporting", "done", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Tools names the external programs and how they are started.
type Tools struct {
	// Xgettext is the GNU gettext extraction program.
	Xgettext string
	// Babel is the pybabel program, used for init, update and compile.
	Babel string
	// PackageVersion is written into the template header.
	PackageVersion string
	// Env overrides environment variables of every tool.
	Env map[string]string
}

// DefaultTools resolves both programs from PATH.
func DefaultTools() Tools {
	return Tools{
		Xgettext:       "xgettext",
		Babel:          "pybabel",
		PackageVersion: "v0",
	}
}

// Options configures a Pipeline.
type Options struct {
	Identity locales.Identity
	Locales  locales.Set
	Layout   locales.Layout
	Tools    Tools
	// Extensions overrides locales.SourceExtensions.
	Extensions []string
	Runner     process.Runner
	Logger     zerolog.Logger
}

// Pipeline runs localization stages for one project. It is not safe for
// concurrent use.
type Pipeline struct {
	identity   locales.Identity
	locales    locales.Set
	layout     locales.Layout
	tools      Tools
	extensions []string
	runner     process.Runner
	logger     zerolog.Logger

	state State
}

// New returns a Pipeline for opts, filling unset tools and extensions with defaults.
func New(opts Options) (*Pipeline, error) {
	if opts.Runner == nil {
		return nil, ErrNoRunner
	}

	defaults := DefaultTools()

	tools := opts.Tools
	if tools.Xgettext == "" {
		tools.Xgettext = defaults.Xgettext
	}

	if tools.Babel == "" {
		tools.Babel = defaults.Babel
	}

	if tools.PackageVersion == "" {
		tools.PackageVersion = defaults.PackageVersion
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = locales.SourceExtensions
	}

	layout := opts.Layout
	if layout.Domain == "" {
		layout.Domain = opts.Identity.DomainKey()
	}

	if layout.TemplateExt == "" {
		layout.TemplateExt = locales.DefaultTemplateExt
	}

	return &Pipeline{
		identity:   opts.Identity,
		locales:    opts.Locales,
		layout:     layout,
		tools:      tools,
		extensions: slices.Clone(extensions),
		runner:     opts.Runner,
		logger:     opts.Logger.With().Str("sys", "pipeline").Logger(),
		state:      StateIdle,
	}, nil
}

// State reports the state of the most recent run.
func (p *Pipeline) State() State {
	return p.state
}

// Layout returns the on-disk layout the pipeline operates on.
func (p *Pipeline) Layout() locales.Layout {
	return p.layout
}

// Run executes the requested stages in the fixed order extract, init,
// update, compile, report, whatever order they were given in. Duplicates are
// ignored. The first failure stops the run and leaves the pipeline Failed.
func (p *Pipeline) Run(ctx context.Context, stages ...Stage) error {
	if len(stages) == 0 {
		return ErrNoStages
	}

	ordered := slices.Clone(stages)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	for _, s := range ordered {
		if s < StageExtract || s > StageReport {
			return fmt.Errorf("%w: %s", ErrUnknownStage, s)
		}
	}

	p.state = StateIdle

	for _, s := range ordered {
		p.transition(stateFor(s))

		if err := p.runStage(ctx, s); err != nil {
			p.transition(StateFailed)

			return fmt.Errorf("%s stage: %w", s, err)
		}
	}

	p.transition(StateDone)

	return nil
}

func (p *Pipeline) runStage(ctx context.Context, s Stage) error {
	switch s {
	case StageExtract:
		return p.Extract(ctx)
	case StageInit:
		_, err := p.Init(ctx)

		return err
	case StageUpdate:
		return p.Update(ctx)
	case StageCompile:
		return p.Compile(ctx)
	case StageReport:
		_, err := p.Report(ctx)

		return err
	}

	return fmt.Errorf("%w: %s", ErrUnknownStage, s)
}

func (p *Pipeline) transition(next State) {
	p.logger.Debug().
		Stringer("from", p.state).
		Stringer("to", next).
		Msg("Pipeline state")

	p.state = next
}

func stateFor(s Stage) State {
	switch s {
	case StageExtract:
		return StateExtracting
	case StageInit:
		return StateInitializing
	case StageUpdate:
		return StateUpdating
	case StageCompile:
		return StateCompiling
	case StageReport:
		return StateReporting
	}

	return StateFailed
}

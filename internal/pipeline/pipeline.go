// Package pipeline orchestrates one scenario run end to end: scan the page,
// resolve locators, extract constraints, classify fields, synthesize test
// data and emit the artifact bundle. Stages run sequentially; each fully
// consumes its predecessor's output before the next starts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/classify"
	"github.com/frherrer/GoE2E-PageForge/internal/config"
	"github.com/frherrer/GoE2E-PageForge/internal/constraint"
	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/driver"
	"github.com/frherrer/GoE2E-PageForge/internal/emitter"
	"github.com/frherrer/GoE2E-PageForge/internal/locator"
	"github.com/frherrer/GoE2E-PageForge/internal/report"
	"github.com/frherrer/GoE2E-PageForge/internal/scanner"
	"github.com/frherrer/GoE2E-PageForge/internal/synth"
	tmpl "github.com/frherrer/GoE2E-PageForge/internal/template"
)

// Result is everything one run produces: the emitted bundle plus what a
// caller needs to report the run (fields, case sets, warnings, final state).
// A failed run keeps its RunID and state but discards partial results.
type Result struct {
	RunID    string
	Scenario string
	URL      string
	State    State
	Fields   []domain.FieldDescriptor
	Cases    map[domain.Category][]domain.TestCaseRecord
	Warnings []domain.Warning
	Bundle   domain.ScenarioArtifactBundle
}

// Pipeline wires the analysis stages around one driver session. A pipeline
// is used by one run at a time; concurrent runs each get their own.
type Pipeline struct {
	drv      driver.Driver
	cfg      *config.Config
	engine   *tmpl.Engine
	log      *logrus.Logger
	now      func() time.Time
	newRunID func() string
}

// Option adjusts pipeline construction.
type Option func(*Pipeline)

// WithClock fixes the timestamp source so emission is byte-deterministic.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithRunID fixes the run id generator.
func WithRunID(gen func() string) Option {
	return func(p *Pipeline) { p.newRunID = gen }
}

// New builds a pipeline around an open driver session.
func New(drv driver.Driver, cfg *config.Config, engine *tmpl.Engine, log *logrus.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		drv:      drv,
		cfg:      cfg,
		engine:   engine,
		log:      log,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate runs the full pipeline for one page. Recoverable conditions
// (unresolved locators, unparseable constraints, overwritten artifacts)
// surface on the result's warning list; a stage blocker fails the run and
// discards partial results.
func (p *Pipeline) Generate(ctx context.Context, name, url string) (*Result, error) {
	res := &Result{
		RunID:    p.newRunID(),
		Scenario: emitter.ScenarioName(name),
		URL:      url,
		State:    StateIdle,
	}
	p.log.Infof("Run %s: generating scenario %q from %s", res.RunID, res.Scenario, url)

	// Step 1: Scan the page for interactive elements.
	res.State = StateScanning
	elements, err := p.scan(ctx, url)
	if err != nil {
		return p.fail(res, err)
	}
	if len(elements) == 0 {
		p.log.Warnf("No interactive elements found at %s", url)
		res.Warnings = append(res.Warnings, domain.Warning{
			Message: fmt.Sprintf("no interactive elements found at %s", url),
		})
	}
	p.log.Infof("Run %s: scanned %d element(s)", res.RunID, len(elements))

	// Step 2: Resolve a unique locator per element.
	res.State = StateResolving
	resolver := locator.New(p.cfg.Scan.TestHookAttributes, p.log)
	idx := locator.NewDriverIndex(p.drv)
	fields := make([]domain.FieldDescriptor, 0, len(elements))
	for _, el := range elements {
		outcome, err := resolver.Resolve(ctx, el, idx)
		if err != nil {
			return p.fail(res, err)
		}
		fd := domain.FieldDescriptor{Element: el, Candidates: outcome.Candidates}
		if outcome.Resolved {
			fd.Locator = outcome.Locator
			fd.Resolved = true
		} else {
			p.log.Warnf("No unique locator for %s", el.DisplayName())
			res.Warnings = append(res.Warnings, domain.Warning{
				Field:   el.DisplayName(),
				Message: fmt.Sprintf("%v: no unique selector found", domain.ErrUnresolvedLocator),
			})
		}
		fields = append(fields, fd)
	}

	// Step 3: Extract declared constraints.
	res.State = StateExtracting
	extractor := constraint.New(p.log)
	for i := range fields {
		c, warns := extractor.Extract(fields[i].Element)
		fields[i].Constraint = c
		res.Warnings = append(res.Warnings, warns...)
	}

	// Step 4: Classify fields into semantic types.
	res.State = StateClassifying
	for i := range fields {
		fields[i].Type = classify.Classify(fields[i].Element, fields[i].Constraint)
	}
	assignKeys(fields)
	res.Fields = fields

	// Step 5: Synthesize the per-category case sets.
	res.State = StateSynthesizing
	synthesizer := synth.New(synth.Defaults{
		EmailLongLength: p.cfg.Synthesis.EmailLongLength,
		NeutralNumber:   p.cfg.Synthesis.NeutralNumber,
	}, p.log)
	res.Cases = synthesizer.Synthesize(fields)

	// Step 6: Emit the bundle, analysis report included.
	res.State = StateEmitting
	now := p.now()
	doc := report.Build(res.Scenario, url, res.RunID, now, fields, res.Warnings, res.Cases)
	bundle, emitWarnings, err := emitter.New(p.engine, p.cfg, p.log).Emit(emitter.Input{
		Scenario: res.Scenario,
		URL:      url,
		Fields:   fields,
		Cases:    res.Cases,
		Analysis: doc.Render(),
		Now:      now,
	})
	if err != nil {
		return p.fail(res, err)
	}
	res.Warnings = append(res.Warnings, emitWarnings...)
	res.Bundle = bundle

	res.State = StateDone
	p.log.Infof("Run %s: done (%d field(s), %d warning(s))", res.RunID, len(res.Fields), len(res.Warnings))
	return res, nil
}

// scan runs the driver scan under the configured retry policy. The timeout
// covers navigation plus script execution per attempt.
func (p *Pipeline) scan(ctx context.Context, url string) ([]domain.RawElement, error) {
	timeout := p.cfg.Browser.NavigationTimeout.Std() + p.cfg.Browser.ScriptTimeout.Std()
	sc := scanner.New(p.drv, timeout, p.cfg.Scan.IncludeHidden, p.log)
	policy := driver.Policy{
		MaxAttempts: p.cfg.Retry.MaxAttempts,
		Backoff:     p.cfg.Retry.Backoff.Std(),
	}

	var elements []domain.RawElement
	attempt := 0
	err := policy.Do(ctx, func() error {
		attempt++
		var scanErr error
		elements, scanErr = sc.Scan(ctx, url)
		if scanErr != nil {
			p.log.Warnf("Scan attempt %d failed: %v", attempt, scanErr)
		}
		return scanErr
	})
	if err != nil {
		return nil, err
	}
	return elements, nil
}

// fail marks the run failed and discards partial results.
func (p *Pipeline) fail(res *Result, err error) (*Result, error) {
	res.State = StateFailed
	res.Fields = nil
	res.Cases = nil
	res.Bundle = domain.ScenarioArtifactBundle{}
	p.log.Errorf("Run %s: failed: %v", res.RunID, err)
	return res, err
}

// assignKeys derives a unique data-file key for every field. Name wins over
// id over text over tag; collisions get a numeric suffix so two unnamed
// buttons stay distinguishable.
func assignKeys(fields []domain.FieldDescriptor) {
	taken := make(map[string]bool, len(fields))
	for i := range fields {
		base := keyFor(fields[i].Element)
		key := base
		for n := 2; taken[key]; n++ {
			key = fmt.Sprintf("%s_%d", base, n)
		}
		taken[key] = true
		fields[i].Key = key
	}
}

func keyFor(el domain.RawElement) string {
	switch {
	case el.Name != "":
		return emitter.FieldIdent(el.Name)
	case el.ID != "":
		return emitter.FieldIdent(el.ID)
	case el.Text != "":
		return emitter.FieldIdent(el.Text)
	default:
		return emitter.FieldIdent(el.Tag)
	}
}

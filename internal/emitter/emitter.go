// Package emitter renders scenario bundles and writes them to disk. All
// artifacts render in memory first; nothing is written until every render
// succeeded, so a failed run leaves no partial bundle behind.
package emitter

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/config"
	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	tmpl "github.com/frherrer/GoE2E-PageForge/internal/template"
)

// Input carries everything the emitter renders for one scenario. Scenario
// must already be slug-shaped (see ScenarioName) and field keys must be
// unique across fields and actions.
type Input struct {
	Scenario string
	URL      string
	Fields   []domain.FieldDescriptor
	Cases    map[domain.Category][]domain.TestCaseRecord
	Analysis string
	Now      time.Time
}

// pageTemplateData feeds the page_object template.
type pageTemplateData struct {
	Scenario    string
	TypeName    string
	URL         string
	GeneratedAt string
	Fields      []templateField
	Actions     []templateAction
}

type templateField struct {
	Key        string
	ConstName  string
	MethodName string
	Selector   string
	Kind       string // fill, check, radio or select
}

type templateAction struct {
	Label      string
	ConstName  string
	MethodName string
	Selector   string
}

// testTemplateData feeds the scenario_test template.
type testTemplateData struct {
	Scenario     string
	PackageName  string
	SuiteName    string
	DescribeName string
	TypeName     string
	TestFunc     string
	PagesImport  string
	DataPath     string
	GeneratedAt  string
}

// Emitter writes scenario bundles under the configured output root.
type Emitter struct {
	engine *tmpl.Engine
	cfg    *config.Config
	log    *logrus.Logger
}

// New creates an emitter rendering through engine.
func New(engine *tmpl.Engine, cfg *config.Config, log *logrus.Logger) *Emitter {
	return &Emitter{engine: engine, cfg: cfg, log: log}
}

// Emit renders the full bundle for in and writes it under
// <output.root>/<scenario>/. Existing artifacts are overwritten and each
// overwrite is reported as a warning, never silently skipped. In dry-run
// mode the bundle is rendered and logged but nothing is written.
func (e *Emitter) Emit(in Input) (domain.ScenarioArtifactBundle, []domain.Warning, error) {
	bundle := domain.ScenarioArtifactBundle{
		Scenario: in.Scenario,
		Dir:      filepath.Join(e.cfg.Output.Root, in.Scenario),
	}

	// Step 1: Render every artifact in memory.
	pageSrc, err := e.engine.RenderGoSource("page_object", e.pageData(in))
	if err != nil {
		return domain.ScenarioArtifactBundle{}, nil, err
	}
	testSrc, err := e.engine.RenderGoSource("scenario_test", e.testData(in))
	if err != nil {
		return domain.ScenarioArtifactBundle{}, nil, err
	}
	data, err := EncodeRecords(in.Cases)
	if err != nil {
		return domain.ScenarioArtifactBundle{}, nil, err
	}

	bundle.Files = []domain.Artifact{
		{Path: path.Join("pages", in.Scenario+"_page.go"), Content: pageSrc},
		{Path: path.Join("tests", in.Scenario+"_test.go"), Content: testSrc},
		{Path: path.Join("testdata", in.Scenario+".json"), Content: string(data) + "\n"},
		{Path: "analysis.md", Content: in.Analysis},
	}

	// Step 2: Detect conflicts with a previous emission.
	var warnings []domain.Warning
	for _, f := range bundle.Files {
		target := filepath.Join(bundle.Dir, filepath.FromSlash(f.Path))
		if _, statErr := os.Stat(target); statErr == nil {
			e.log.Warnf("Overwriting existing artifact: %s", target)
			warnings = append(warnings, domain.Warning{
				Field:   f.Path,
				Message: fmt.Sprintf("%v: artifact exists and will be overwritten", domain.ErrEmitConflict),
			})
		}
	}

	// Step 3: Write, or report what would be written.
	if e.cfg.DryRun {
		for _, f := range bundle.Files {
			e.log.Infof("[DRY-RUN] Would write: %s", filepath.Join(bundle.Dir, filepath.FromSlash(f.Path)))
		}
		return bundle, warnings, nil
	}

	for _, f := range bundle.Files {
		target := filepath.Join(bundle.Dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return domain.ScenarioArtifactBundle{}, warnings, domain.NewError("emit", in.Scenario, "",
				fmt.Sprintf("creating directory %s", filepath.Dir(target)), err)
		}
		e.log.Infof("Writing: %s", target)
		if err := os.WriteFile(target, []byte(f.Content), 0644); err != nil {
			return domain.ScenarioArtifactBundle{}, warnings, domain.NewError("emit", in.Scenario, "",
				fmt.Sprintf("writing %s", target), err)
		}
	}
	return bundle, warnings, nil
}

func (e *Emitter) pageData(in Input) pageTemplateData {
	data := pageTemplateData{
		Scenario:    in.Scenario,
		TypeName:    Pascal(in.Scenario) + "Page",
		URL:         in.URL,
		GeneratedAt: in.Now.UTC().Format(time.RFC3339),
	}
	for _, f := range in.Fields {
		if !f.Resolved {
			continue
		}
		if f.Type == domain.FieldUnknown {
			data.Actions = append(data.Actions, templateAction{
				Label:      actionLabel(f),
				ConstName:  Pascal(f.Key) + "Locator",
				MethodName: "Click" + Pascal(f.Key),
				Selector:   f.Locator.Selector,
			})
			continue
		}
		data.Fields = append(data.Fields, templateField{
			Key:        f.Key,
			ConstName:  Pascal(f.Key) + "Locator",
			MethodName: methodName(f),
			Selector:   f.Locator.Selector,
			Kind:       fieldKind(f.Type),
		})
	}
	return data
}

func (e *Emitter) testData(in Input) testTemplateData {
	return testTemplateData{
		Scenario:     in.Scenario,
		PackageName:  in.Scenario + "_test",
		SuiteName:    Pascal(in.Scenario) + " Scenario Suite",
		DescribeName: Pascal(in.Scenario),
		TypeName:     Pascal(in.Scenario) + "Page",
		TestFunc:     "Test" + Pascal(in.Scenario),
		PagesImport:  path.Join(e.cfg.Output.ImportBase, in.Scenario, "pages"),
		DataPath:     path.Join("..", "testdata", in.Scenario+".json"),
		GeneratedAt:  in.Now.UTC().Format(time.RFC3339),
	}
}

func methodName(f domain.FieldDescriptor) string {
	switch f.Type {
	case domain.FieldCheckbox, domain.FieldRadio:
		return "Check" + Pascal(f.Key)
	case domain.FieldSelect:
		return "Select" + Pascal(f.Key)
	default:
		return "Fill" + Pascal(f.Key)
	}
}

func fieldKind(t domain.FieldType) string {
	switch t {
	case domain.FieldCheckbox:
		return "check"
	case domain.FieldRadio:
		return "radio"
	case domain.FieldSelect:
		return "select"
	default:
		return "fill"
	}
}

// actionLabel picks the comment label for a click stub, collapsing any
// whitespace so multi-line button text cannot break the generated comment.
func actionLabel(f domain.FieldDescriptor) string {
	if text := strings.Join(strings.Fields(f.Element.Text), " "); text != "" {
		return text
	}
	return f.Key
}

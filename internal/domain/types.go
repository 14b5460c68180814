package domain

// Strategy identifies how a locator selects its element. Lower-numbered
// strategies in the resolution priority are the most resistant to markup
// churn.
type Strategy string

const (
	StrategyID         Strategy = "id"
	StrategyName       Strategy = "name"
	StrategyTestHook   Strategy = "test-hook"
	StrategyCSS        Strategy = "css"
	StrategyStructural Strategy = "structural"
)

// FieldType is the closed set of semantic field types driving synthesis.
type FieldType string

const (
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldNumber   FieldType = "number"
	FieldText     FieldType = "text"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldUnknown  FieldType = "unknown"
)

// Category labels a synthesized test case.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryBoundary Category = "boundary"
)

// Categories returns all case categories in emission order.
func Categories() []Category {
	return []Category{CategoryPositive, CategoryNegative, CategoryBoundary}
}

// RawElement is one interactive DOM element captured by a page scan.
// Instances are produced fresh per scan, are immutable once captured, and
// are scoped to a single analysis run.
type RawElement struct {
	Tag        string            // lowercase tag name ("input", "select", ...)
	InputType  string            // the type attribute for inputs, empty otherwise
	ID         string
	Name       string
	Classes    []string
	Text       string            // visible text content, truncated by the scan script
	Visible    bool
	Path       string            // structural CSS path computed at scan time
	Options    []string          // declared option values, select elements only
	Attributes map[string]string // full attribute map as scanned
}

// Attr looks up an attribute by name. Unknown attributes are simply absent;
// callers never dispatch dynamically on the attribute map.
func (e *RawElement) Attr(key string) (string, bool) {
	v, ok := e.Attributes[key]
	return v, ok
}

// DisplayName returns a stable human-readable handle for logs and warnings:
// the name attribute, falling back to the id, falling back to the tag.
func (e *RawElement) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	if e.ID != "" {
		return e.ID
	}
	return e.Tag
}

// LocatorCandidate is one selector probed during resolution. Unique reports
// whether the selector matched exactly one element at resolution time.
type LocatorCandidate struct {
	Strategy Strategy
	Selector string
	Unique   bool
}

// Constraint is the normalized validation rule set declared on a field.
// Absent attributes stay nil, never a fabricated default.
type Constraint struct {
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *int
	Max       *int
	Pattern   string // verbatim regex string, not evaluated at extraction time
	TypeHint  string // declared input type when semantic: email, tel, number, password, url
}

// FieldDescriptor is a typed, locatable form field. Identity is the resolved
// locator string. Descriptors are created during one analysis pass, consumed
// immediately by synthesis, and not persisted beyond the run unless the
// emitter serializes them.
type FieldDescriptor struct {
	Element    RawElement
	Candidates []LocatorCandidate // probed in priority order
	Locator    LocatorCandidate   // the first unique candidate; zero when unresolved
	Resolved   bool
	Type       FieldType
	Constraint Constraint
	Key        string // data-file field name, unique within the run
}

// Synthesizable reports whether the field participates in data synthesis.
// Unresolved fields and non-data elements (buttons, links) are excluded.
func (f *FieldDescriptor) Synthesizable() bool {
	return f.Resolved && f.Type != FieldUnknown
}

// TestCaseRecord is one emitted test case. Ordering within a category is
// insertion order and matters for emitted-file readability only.
type TestCaseRecord struct {
	ID       string            `json:"id"`
	Category Category          `json:"category"`
	Fields   map[string]string `json:"fields"`
	Expected bool              `json:"expected"`
}

// Artifact is one rendered file of a scenario bundle, addressed relative to
// the scenario directory.
type Artifact struct {
	Path    string
	Content string
}

// ScenarioArtifactBundle is the emitted output for one scenario. The
// scenario directory owns the files exclusively once written; regeneration
// overwrites them in full, it never merges.
type ScenarioArtifactBundle struct {
	Scenario string
	Dir      string
	Files    []Artifact
}

// Warning is a recoverable, field-scoped condition surfaced on the run
// result instead of aborting the pipeline.
type Warning struct {
	Field   string
	Message string
}

// Package locator turns scanned elements into page-unique selectors. Each
// element gets a candidate list in a fixed priority order (id, name, test
// hook attributes, css, structural path) and the first candidate matching
// exactly one element on the page wins.
package locator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// simpleIdent matches values safe to use in a #id shorthand or a class chain
// without CSS escaping.
var simpleIdent = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Resolver derives locator candidates for raw elements and picks the first
// candidate that uniquely matches.
type Resolver struct {
	testHooks []string
	log       *logrus.Logger
}

// Outcome is the result of resolving one element. When Resolved is false the
// element stays locatorless and the caller decides whether that is fatal.
type Outcome struct {
	Resolved   bool
	Locator    domain.LocatorCandidate
	Candidates []domain.LocatorCandidate
}

// New creates a resolver. testHooks lists attribute names probed by the
// test-hook strategy, in priority order.
func New(testHooks []string, log *logrus.Logger) *Resolver {
	return &Resolver{testHooks: testHooks, log: log}
}

// Resolve builds the candidate list for el and probes each candidate against
// idx in priority order, stopping at the first unique match. A failing index
// lookup aborts resolution; exhausting all candidates does not, it reports an
// unresolved outcome instead.
func (r *Resolver) Resolve(ctx context.Context, el domain.RawElement, idx Index) (Outcome, error) {
	candidates := r.candidates(el)
	for i := range candidates {
		n, err := idx.Count(ctx, candidates[i].Selector)
		if err != nil {
			return Outcome{}, domain.NewError("resolve", "", el.DisplayName(),
				fmt.Sprintf("counting matches for %q", candidates[i].Selector), err)
		}
		if n == 1 {
			candidates[i].Unique = true
			return Outcome{Resolved: true, Locator: candidates[i], Candidates: candidates}, nil
		}
		r.log.Debugf("Selector %q matches %d elements, trying next strategy", candidates[i].Selector, n)
	}
	return Outcome{Candidates: candidates}, nil
}

// candidates lists every selector worth probing for el, ordered by strategy
// priority. Strategies that do not apply to the element are skipped rather
// than emitted empty.
func (r *Resolver) candidates(el domain.RawElement) []domain.LocatorCandidate {
	var out []domain.LocatorCandidate
	if el.ID != "" {
		out = append(out, domain.LocatorCandidate{Strategy: domain.StrategyID, Selector: idSelector(el.ID)})
	}
	if el.Name != "" {
		out = append(out, domain.LocatorCandidate{Strategy: domain.StrategyName, Selector: attrSelector("name", el.Name)})
	}
	for _, hook := range r.testHooks {
		if v, ok := el.Attr(hook); ok && v != "" {
			out = append(out, domain.LocatorCandidate{Strategy: domain.StrategyTestHook, Selector: attrSelector(hook, v)})
		}
	}
	if sel := cssSelector(el); sel != "" {
		out = append(out, domain.LocatorCandidate{Strategy: domain.StrategyCSS, Selector: sel})
	}
	if el.Path != "" {
		out = append(out, domain.LocatorCandidate{Strategy: domain.StrategyStructural, Selector: el.Path})
	}
	return out
}

// idSelector prefers the #id shorthand and falls back to an attribute
// selector for ids that need quoting.
func idSelector(id string) string {
	if simpleIdent.MatchString(id) {
		return "#" + id
	}
	return attrSelector("id", id)
}

// attrSelector builds a quoted [attr="value"] selector, escaping backslashes
// and double quotes inside the value.
func attrSelector(attr, value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return fmt.Sprintf(`[%s="%s"]`, attr, escaped)
}

// cssSelector chains the element's stable-looking classes onto its tag.
// Classes with characters outside the plain identifier set are treated as
// framework noise and skipped. With no usable class the selector narrows by
// input type instead, and with neither it yields nothing.
func cssSelector(el domain.RawElement) string {
	var classes []string
	for _, c := range el.Classes {
		if simpleIdent.MatchString(c) {
			classes = append(classes, c)
		}
	}
	if len(classes) > 0 {
		return el.Tag + "." + strings.Join(classes, ".")
	}
	if el.InputType != "" {
		return fmt.Sprintf(`%s[type="%s"]`, el.Tag, el.InputType)
	}
	return ""
}

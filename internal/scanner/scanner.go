// Package scanner obtains the raw interactive-element snapshot for one page.
// All element data is gathered in a single script round trip to keep the
// per-run driver traffic to one navigation plus one evaluation.
package scanner

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/driver"
)

//go:embed scan.js
var scanScript string

// Scanner is the pipeline's first stage. It depends only on the driver
// collaborator.
type Scanner struct {
	drv           driver.Driver
	timeout       time.Duration
	includeHidden bool
	log           *logrus.Logger
}

// New creates a Scanner. timeout bounds the whole scan (navigation plus
// script execution); on expiry the scan fails with ErrScanTimeout instead of
// hanging.
func New(drv driver.Driver, timeout time.Duration, includeHidden bool, log *logrus.Logger) *Scanner {
	return &Scanner{
		drv:           drv,
		timeout:       timeout,
		includeHidden: includeHidden,
		log:           log,
	}
}

// Scan navigates to url and captures every interactive element on the page.
// Hidden elements are dropped unless the scanner was configured to keep them.
func (s *Scanner) Scan(ctx context.Context, url string) ([]domain.RawElement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.drv.Navigate(ctx, url); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, scanTimeout(url, err)
		}
		return nil, domain.NewError("scan", "", "", fmt.Sprintf("failed to navigate to %s", url), err)
	}

	raw, err := s.drv.ExecuteScript(ctx, scanScript)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, scanTimeout(url, err)
		}
		return nil, domain.NewError("scan", "", "", "element scan script failed", err)
	}
	// The driver may not honor the context itself; enforce the bound here.
	if ctx.Err() != nil {
		return nil, scanTimeout(url, ctx.Err())
	}

	elements := decodeElements(raw)
	if !s.includeHidden {
		visible := make([]domain.RawElement, 0, len(elements))
		for _, el := range elements {
			if el.Visible {
				visible = append(visible, el)
			}
		}
		elements = visible
	}

	s.log.Debugf("Scanned %d element(s) from %s", len(elements), url)
	return elements, nil
}

func scanTimeout(url string, cause error) error {
	return domain.NewError("scan", "", "",
		fmt.Sprintf("driver did not return element data for %s in time", url),
		errors.Join(domain.ErrScanTimeout, cause))
}

// decodeElements turns the script result into RawElements. Entries that do
// not decode are skipped rather than failing the scan.
func decodeElements(result any) []domain.RawElement {
	items, ok := result.([]any)
	if !ok {
		return nil
	}

	elements := make([]domain.RawElement, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		elements = append(elements, domain.RawElement{
			Tag:        getString(m, "tag"),
			InputType:  getString(m, "type"),
			ID:         getString(m, "id"),
			Name:       getString(m, "name"),
			Classes:    getStringSlice(m, "classes"),
			Text:       getString(m, "text"),
			Visible:    getBool(m, "visible"),
			Path:       getString(m, "path"),
			Options:    getStringSlice(m, "options"),
			Attributes: getStringMap(m, "attrs"),
		})
	}
	return elements
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getStringMap(m map[string]any, key string) map[string]string {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

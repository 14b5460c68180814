// Package driver defines the browser collaborator the pipeline consumes and
// its playwright-backed production implementation. The pipeline never talks
// to a browser directly; everything goes through this interface so analysis
// stages stay testable without a browser.
package driver

import "context"

// Driver is the opaque browser capability: navigate, execute script, count
// selector matches. Implementations are used sequentially by a single run;
// concurrent runs each own their own Driver.
type Driver interface {
	// Navigate loads the target URL and waits for the page to settle.
	Navigate(ctx context.Context, url string) error
	// ExecuteScript evaluates a JavaScript expression on the current page
	// and returns the decoded result.
	ExecuteScript(ctx context.Context, script string) (any, error)
	// CountBySelector returns how many elements match the CSS selector on
	// the current page.
	CountBySelector(ctx context.Context, selector string) (int, error)
	// Close releases the underlying browser session.
	Close() error
}

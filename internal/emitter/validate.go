package emitter

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/report"
)

// ValidateBundle checks a previously emitted scenario directory: both Go
// artifacts must be parseable Go source, the dataset must satisfy the
// record invariants and the analysis document must parse back into a
// summary. The directory name is the scenario name.
func ValidateBundle(dir string) error {
	scenario := filepath.Base(filepath.Clean(dir))

	if err := validateGoSource(filepath.Join(dir, "pages", scenario+"_page.go"), scenario); err != nil {
		return err
	}
	if err := validateGoSource(filepath.Join(dir, "tests", scenario+"_test.go"), scenario); err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(dir, "testdata", scenario+".json"))
	if err != nil {
		return domain.NewError("validate", scenario, "", "reading dataset", err)
	}
	if _, err := DecodeRecords(data); err != nil {
		return err
	}

	analysis, err := os.ReadFile(filepath.Join(dir, "analysis.md"))
	if err != nil {
		return domain.NewError("validate", scenario, "", "reading analysis document", err)
	}
	if _, err := report.ParseSummary(analysis); err != nil {
		return err
	}
	return nil
}

func validateGoSource(path, scenario string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return domain.NewError("validate", scenario, "", "reading artifact", err)
	}
	if _, err := format.Source(src); err != nil {
		return domain.NewError("validate", scenario, "",
			fmt.Sprintf("%s is not valid Go source", filepath.Base(path)), err)
	}
	return nil
}

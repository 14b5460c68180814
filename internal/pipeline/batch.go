package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/frherrer/GoE2E-PageForge/internal/config"
	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/driver"
	tmpl "github.com/frherrer/GoE2E-PageForge/internal/template"
)

// ManifestEntry is one scenario in a batch manifest.
type ManifestEntry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Manifest is the YAML input of the batch command.
type Manifest struct {
	Scenarios []ManifestEntry `yaml:"scenarios"`
}

// LoadManifest reads a batch manifest and checks that every entry names a
// scenario and a target URL.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", "", "", "failed to read manifest", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, domain.NewError("config", "", "", "failed to parse manifest", err)
	}
	if len(m.Scenarios) == 0 {
		return nil, domain.NewError("config", "", "", "manifest lists no scenarios", nil)
	}
	for i, s := range m.Scenarios {
		if s.Name == "" || s.URL == "" {
			return nil, domain.NewError("config", "", "",
				fmt.Sprintf("manifest entry %d needs both name and url", i), nil)
		}
	}
	return &m, nil
}

// DriverFactory opens a fresh driver session for one scenario run.
type DriverFactory func(ctx context.Context) (driver.Driver, error)

// Batch runs several scenarios concurrently. Each run owns an isolated
// driver session; Parallel bounds how many are in flight at once.
type Batch struct {
	Factory  DriverFactory
	Config   *config.Config
	Engine   *tmpl.Engine
	Log      *logrus.Logger
	Parallel int
	Options  []Option
}

// Run executes every manifest entry as its own pipeline. The first hard
// failure cancels runs that have not started; results are returned in
// manifest order, with a nil slot when a run never got a driver session.
func (b Batch) Run(ctx context.Context, m *Manifest) ([]*Result, error) {
	parallel := b.Parallel
	if parallel < 1 {
		parallel = 1
	}
	results := make([]*Result, len(m.Scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, entry := range m.Scenarios {
		i, entry := i, entry
		g.Go(func() error {
			drv, err := b.Factory(ctx)
			if err != nil {
				return err
			}
			defer drv.Close()

			p := New(drv, b.Config, b.Engine, b.Log, b.Options...)
			res, err := p.Generate(ctx, entry.Name, entry.URL)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}

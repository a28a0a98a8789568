package mcp

import (
	"github.com/cflowgraph/pycfg/app"
	"github.com/cflowgraph/pycfg/domain"
	"github.com/cflowgraph/pycfg/internal/config"
	"github.com/cflowgraph/pycfg/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildAnalyzeUseCase assembles a fresh AnalyzeUseCase with injected dependencies.
func (d *Dependencies) BuildAnalyzeUseCase() (*app.AnalyzeUseCase, error) {
	return buildAnalyzeUseCase(d.fileReader)
}

// shared is the process-wide Dependencies installed by Init. Tool handlers
// fall back to their own defaults when it's nil (e.g. in unit tests that
// never call Init).
var shared *Dependencies

// Init installs the Dependencies built from the MCP server's loaded config
// so tool handlers share one FileReader instead of each constructing their
// own.
func Init(d *Dependencies) {
	shared = d
}

func sharedFileReader() domain.FileReader {
	if shared != nil {
		return shared.fileReader
	}
	return service.NewFileReader()
}

package service

import (
	"os"

	"github.com/cflowgraph/pycfg/domain"
	"github.com/cflowgraph/pycfg/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ComplexityRequest, error) {
	// Use TOML-only loader
	tomlLoader := config.NewTomlConfigLoader()
	pycfgCfg, err := tomlLoader.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	// Convert pycfg config to unified config format, then to complexity request
	cfg := c.pycfgConfigToUnifiedConfig(pycfgCfg)
	return c.convertToComplexityRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking for .pycfg.toml
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.ComplexityRequest {
	// First, try to find and load a config file in the current directory
	configFile := c.FindDefaultConfigFile()
	if configFile != "" {
		if configReq, err := c.LoadConfig(configFile); err == nil {
			return configReq
		}
		// If loading failed, fall back to hardcoded defaults
	}

	// Fall back to hardcoded default configuration
	cfg := config.DefaultConfig()
	return c.convertToComplexityRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ComplexityRequest, override *domain.ComplexityRequest) *domain.ComplexityRequest {
	// Start with base configuration
	merged := *base

	// Override with non-zero values from override
	// Always override paths as they come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	// Output configuration
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	// Only override if values differ from defaults
	if override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}

	// Filtering and sorting - override if non-default
	if override.MinComplexity != 1 {
		merged.MinComplexity = override.MinComplexity
	}

	if override.MaxComplexity != 0 {
		merged.MaxComplexity = override.MaxComplexity
	}

	if override.SortBy != "" && override.SortBy != "complexity" {
		merged.SortBy = override.SortBy
	}

	// Complexity thresholds - override if non-default
	if override.LowThreshold != 9 && override.LowThreshold > 0 {
		merged.LowThreshold = override.LowThreshold
	}

	if override.MediumThreshold != 19 && override.MediumThreshold > 0 {
		merged.MediumThreshold = override.MediumThreshold
	}

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	// For recursive, preserve the override value
	merged.Recursive = override.Recursive

	// Patterns - override if provided and different from defaults
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}

	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// convertToComplexityRequest converts internal config to domain request
func (c *ConfigurationLoaderImpl) convertToComplexityRequest(cfg *config.Config) *domain.ComplexityRequest {
	// Convert output format
	var outputFormat domain.OutputFormat
	switch cfg.Output.Format {
	case "json":
		outputFormat = domain.OutputFormatJSON
	case "yaml":
		outputFormat = domain.OutputFormatYAML
	case "csv":
		outputFormat = domain.OutputFormatCSV
	case "html":
		outputFormat = domain.OutputFormatHTML
	default:
		outputFormat = domain.OutputFormatText
	}

	// Convert sort criteria
	var sortBy domain.SortCriteria
	switch cfg.Output.SortBy {
	case "name":
		sortBy = domain.SortByName
	case "risk":
		sortBy = domain.SortByRisk
	default:
		sortBy = domain.SortByComplexity
	}

	return &domain.ComplexityRequest{
		OutputFormat:    outputFormat,
		OutputWriter:    os.Stdout, // Default to stdout
		ShowDetails:     cfg.Output.ShowDetails,
		MinComplexity:   cfg.Output.MinComplexity,
		MaxComplexity:   cfg.Complexity.MaxComplexity,
		SortBy:          sortBy,
		LowThreshold:    cfg.Complexity.LowThreshold,
		MediumThreshold: cfg.Complexity.MediumThreshold,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}

// ValidateConfig validates a configuration request
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.ComplexityRequest) error {
	if req.LowThreshold <= 0 {
		return domain.NewConfigError("low threshold must be positive", nil)
	}

	if req.MediumThreshold <= req.LowThreshold {
		return domain.NewConfigError("medium threshold must be greater than low threshold", nil)
	}

	if req.MaxComplexity > 0 && req.MaxComplexity <= req.MediumThreshold {
		return domain.NewConfigError("max complexity must be greater than medium threshold or 0 for no limit", nil)
	}

	if req.MinComplexity < 0 {
		return domain.NewConfigError("minimum complexity cannot be negative", nil)
	}

	if req.MaxComplexity > 0 && req.MinComplexity > req.MaxComplexity {
		return domain.NewConfigError("minimum complexity cannot be greater than maximum complexity", nil)
	}

	return nil
}

// GetDefaultThresholds returns the default complexity thresholds
func (c *ConfigurationLoaderImpl) GetDefaultThresholds() (low, medium int) {
	return config.DefaultLowComplexityThreshold, config.DefaultMediumComplexityThreshold
}

// CreateConfigTemplate creates a template configuration file
func (c *ConfigurationLoaderImpl) CreateConfigTemplate(path string) error {
	cfg := config.DefaultConfig()
	return config.SaveConfig(cfg, path)
}

// FindDefaultConfigFile looks for TOML config files in the current directory
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	// Use TOML-only strategy
	tomlLoader := config.NewTomlConfigLoader()
	configFiles := tomlLoader.GetSupportedConfigFiles()

	for _, filename := range configFiles {
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
	}

	return "" // No config file found
}

// pycfgConfigToUnifiedConfig converts PycfgConfig to unified Config format
func (c *ConfigurationLoaderImpl) pycfgConfigToUnifiedConfig(pycfgCfg *config.PycfgConfig) *config.Config {
	cfg := config.DefaultConfig()

	// Map clone detection settings (backward compatibility)
	cfg.Analysis.IncludePatterns = pycfgCfg.Input.IncludePatterns
	cfg.Analysis.ExcludePatterns = pycfgCfg.Input.ExcludePatterns
	cfg.Analysis.Recursive = config.BoolValue(pycfgCfg.Input.Recursive, true)

	// Map clone output settings (backward compatibility)
	cfg.Output.Format = pycfgCfg.Output.Format
	cfg.Output.ShowDetails = config.BoolValue(pycfgCfg.Output.ShowDetails, false)

	// Map complexity settings from [complexity] section
	cfg.Complexity.LowThreshold = pycfgCfg.ComplexityLowThreshold
	cfg.Complexity.MediumThreshold = pycfgCfg.ComplexityMediumThreshold
	cfg.Complexity.MaxComplexity = pycfgCfg.ComplexityMaxComplexity
	cfg.Output.MinComplexity = pycfgCfg.ComplexityMinComplexity

	// Map dead code settings from [dead_code] section
	cfg.DeadCode.Enabled = config.BoolValue(pycfgCfg.DeadCodeEnabled, true)
	cfg.DeadCode.MinSeverity = pycfgCfg.DeadCodeMinSeverity
	cfg.DeadCode.ShowContext = config.BoolValue(pycfgCfg.DeadCodeShowContext, false)
	cfg.DeadCode.ContextLines = pycfgCfg.DeadCodeContextLines
	cfg.DeadCode.SortBy = pycfgCfg.DeadCodeSortBy
	cfg.DeadCode.DetectAfterReturn = config.BoolValue(pycfgCfg.DeadCodeDetectAfterReturn, true)
	cfg.DeadCode.DetectAfterBreak = config.BoolValue(pycfgCfg.DeadCodeDetectAfterBreak, true)
	cfg.DeadCode.DetectAfterContinue = config.BoolValue(pycfgCfg.DeadCodeDetectAfterContinue, true)
	cfg.DeadCode.DetectAfterRaise = config.BoolValue(pycfgCfg.DeadCodeDetectAfterRaise, true)
	cfg.DeadCode.DetectUnreachableBranches = config.BoolValue(pycfgCfg.DeadCodeDetectUnreachableBranches, true)
	cfg.DeadCode.IgnorePatterns = pycfgCfg.DeadCodeIgnorePatterns

	// Map general output settings from [output] section (override clone-specific if set)
	if pycfgCfg.OutputFormat != "" {
		cfg.Output.Format = pycfgCfg.OutputFormat
	}
	if pycfgCfg.OutputSortBy != "" {
		cfg.Output.SortBy = pycfgCfg.OutputSortBy
	}
	if pycfgCfg.OutputDirectory != "" {
		cfg.Output.Directory = pycfgCfg.OutputDirectory
	}
	cfg.Output.ShowDetails = cfg.Output.ShowDetails || config.BoolValue(pycfgCfg.OutputShowDetails, false)
	if pycfgCfg.OutputMinComplexity > 0 {
		cfg.Output.MinComplexity = pycfgCfg.OutputMinComplexity
	}

	// Map general analysis settings from [analysis] section (override clone-specific if set)
	if len(pycfgCfg.AnalysisIncludePatterns) > 0 {
		cfg.Analysis.IncludePatterns = pycfgCfg.AnalysisIncludePatterns
	}
	if len(pycfgCfg.AnalysisExcludePatterns) > 0 {
		cfg.Analysis.ExcludePatterns = pycfgCfg.AnalysisExcludePatterns
	}
	cfg.Analysis.Recursive = cfg.Analysis.Recursive || config.BoolValue(pycfgCfg.AnalysisRecursive, true)
	cfg.Analysis.FollowSymlinks = config.BoolValue(pycfgCfg.AnalysisFollowSymlinks, false)

	// Map architecture settings from [architecture] section
	cfg.Architecture.Enabled = config.BoolValue(pycfgCfg.ArchitectureEnabled, false)
	cfg.Architecture.ValidateLayers = config.BoolValue(pycfgCfg.ArchitectureValidateLayers, true)
	cfg.Architecture.ValidateCohesion = config.BoolValue(pycfgCfg.ArchitectureValidateCohesion, true)
	cfg.Architecture.ValidateResponsibility = config.BoolValue(pycfgCfg.ArchitectureValidateResponsibility, true)
	cfg.Architecture.MinCohesion = pycfgCfg.ArchitectureMinCohesion
	cfg.Architecture.MaxCoupling = pycfgCfg.ArchitectureMaxCoupling
	cfg.Architecture.MaxResponsibilities = pycfgCfg.ArchitectureMaxResponsibilities
	cfg.Architecture.LayerViolationSeverity = pycfgCfg.ArchitectureLayerViolationSeverity
	cfg.Architecture.CohesionViolationSeverity = pycfgCfg.ArchitectureCohesionViolationSeverity
	cfg.Architecture.ResponsibilityViolationSeverity = pycfgCfg.ArchitectureResponsibilityViolationSeverity
	cfg.Architecture.ShowAllViolations = config.BoolValue(pycfgCfg.ArchitectureShowAllViolations, true)
	cfg.Architecture.GroupByType = config.BoolValue(pycfgCfg.ArchitectureGroupByType, true)
	cfg.Architecture.IncludeSuggestions = config.BoolValue(pycfgCfg.ArchitectureIncludeSuggestions, true)
	cfg.Architecture.MaxViolationsToShow = pycfgCfg.ArchitectureMaxViolationsToShow
	cfg.Architecture.CustomPatterns = pycfgCfg.ArchitectureCustomPatterns
	cfg.Architecture.AllowedPatterns = pycfgCfg.ArchitectureAllowedPatterns
	cfg.Architecture.ForbiddenPatterns = pycfgCfg.ArchitectureForbiddenPatterns
	cfg.Architecture.StrictMode = config.BoolValue(pycfgCfg.ArchitectureStrictMode, false)
	cfg.Architecture.FailOnViolations = config.BoolValue(pycfgCfg.ArchitectureFailOnViolations, false)

	// Map system analysis settings from [system_analysis] section
	cfg.SystemAnalysis.Enabled = config.BoolValue(pycfgCfg.SystemAnalysisEnabled, false)
	cfg.SystemAnalysis.EnableDependencies = config.BoolValue(pycfgCfg.SystemAnalysisEnableDependencies, true)
	cfg.SystemAnalysis.EnableArchitecture = config.BoolValue(pycfgCfg.SystemAnalysisEnableArchitecture, true)
	cfg.SystemAnalysis.UseComplexityData = config.BoolValue(pycfgCfg.SystemAnalysisUseComplexityData, false)
	cfg.SystemAnalysis.UseClonesData = config.BoolValue(pycfgCfg.SystemAnalysisUseClonesData, false)
	cfg.SystemAnalysis.UseDeadCodeData = config.BoolValue(pycfgCfg.SystemAnalysisUseDeadCodeData, false)
	cfg.SystemAnalysis.GenerateUnifiedReport = config.BoolValue(pycfgCfg.SystemAnalysisGenerateUnifiedReport, true)

	// Map dependencies settings from [dependencies] section
	cfg.Dependencies.Enabled = config.BoolValue(pycfgCfg.DependenciesEnabled, false)
	cfg.Dependencies.IncludeStdLib = config.BoolValue(pycfgCfg.DependenciesIncludeStdLib, false)
	cfg.Dependencies.IncludeThirdParty = config.BoolValue(pycfgCfg.DependenciesIncludeThirdParty, true)
	cfg.Dependencies.FollowRelative = config.BoolValue(pycfgCfg.DependenciesFollowRelative, true)
	cfg.Dependencies.DetectCycles = config.BoolValue(pycfgCfg.DependenciesDetectCycles, true)
	cfg.Dependencies.CalculateMetrics = config.BoolValue(pycfgCfg.DependenciesCalculateMetrics, true)
	cfg.Dependencies.FindLongChains = config.BoolValue(pycfgCfg.DependenciesFindLongChains, true)
	cfg.Dependencies.MinCoupling = pycfgCfg.DependenciesMinCoupling
	cfg.Dependencies.MaxCoupling = pycfgCfg.DependenciesMaxCoupling
	cfg.Dependencies.MinInstability = pycfgCfg.DependenciesMinInstability
	cfg.Dependencies.MaxDistance = pycfgCfg.DependenciesMaxDistance
	cfg.Dependencies.SortBy = pycfgCfg.DependenciesSortBy
	cfg.Dependencies.ShowMatrix = config.BoolValue(pycfgCfg.DependenciesShowMatrix, true)
	cfg.Dependencies.ShowMetrics = config.BoolValue(pycfgCfg.DependenciesShowMetrics, true)
	cfg.Dependencies.ShowChains = config.BoolValue(pycfgCfg.DependenciesShowChains, true)
	cfg.Dependencies.GenerateDotGraph = config.BoolValue(pycfgCfg.DependenciesGenerateDotGraph, false)
	cfg.Dependencies.CycleReporting = pycfgCfg.DependenciesCycleReporting
	cfg.Dependencies.MaxCyclesToShow = pycfgCfg.DependenciesMaxCyclesToShow
	cfg.Dependencies.ShowCyclePaths = config.BoolValue(pycfgCfg.DependenciesShowCyclePaths, true)

	// Keep the clone config reference for backward compatibility
	cfg.Clones = pycfgCfg

	return cfg
}

package service

import (
	"testing"

	"github.com/cflowgraph/pycfg/domain"
	"github.com/stretchr/testify/assert"
)

// TestFileReader_Basic tests basic FileReader functionality
func TestFileReader_Basic(t *testing.T) {
	reader := NewFileReader()

	t.Run("NewFileReader creates instance", func(t *testing.T) {
		assert.NotNil(t, reader)
	})

	t.Run("IsValidPythonFile recognizes .py files", func(t *testing.T) {
		assert.True(t, reader.IsValidPythonFile("test.py"))
		assert.True(t, reader.IsValidPythonFile("module.pyi"))
		assert.False(t, reader.IsValidPythonFile("test.txt"))
		assert.False(t, reader.IsValidPythonFile("README.md"))
	})

	t.Run("FileExists handles non-existent files", func(t *testing.T) {
		exists, err := reader.FileExists("/path/that/does/not/exist")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

// TestOutputFormatter_Basic tests basic OutputFormatter functionality
func TestOutputFormatter_Basic(t *testing.T) {
	formatter := NewOutputFormatter()

	t.Run("NewOutputFormatter creates instance", func(t *testing.T) {
		assert.NotNil(t, formatter)
	})

	t.Run("Format handles unsupported format", func(t *testing.T) {
		response := &domain.ComplexityResponse{
			Functions: []domain.FunctionComplexity{},
			Summary: domain.ComplexitySummary{
				TotalFunctions: 0,
			},
		}

		_, err := formatter.Format(response, domain.OutputFormat("unsupported"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}

// TestComplexityService_Basic tests basic ComplexityService functionality
func TestComplexityService_Basic(t *testing.T) {
	service := NewComplexityService()

	t.Run("NewComplexityService creates instance", func(t *testing.T) {
		assert.NotNil(t, service)
		assert.NotNil(t, service.parser)
	})

	t.Run("sortFunctions handles empty slice", func(t *testing.T) {
		var functions []domain.FunctionComplexity
		result := service.sortFunctions(functions, domain.SortByComplexity)
		assert.Equal(t, 0, len(result))
	})

	t.Run("filterFunctions handles empty slice", func(t *testing.T) {
		var functions []domain.FunctionComplexity
		req := domain.ComplexityRequest{MinComplexity: 1, MaxComplexity: 10}
		result := service.filterFunctions(functions, req)
		assert.Equal(t, 0, len(result))
	})

	t.Run("generateSummary handles empty data", func(t *testing.T) {
		var functions []domain.FunctionComplexity
		req := domain.ComplexityRequest{LowThreshold: 3, MediumThreshold: 7}
		summary := service.generateSummary(functions, 0, req)

		assert.Equal(t, 0, summary.TotalFunctions)
		assert.Equal(t, 0.0, summary.AverageComplexity)
	})
}

// TestDeadCodeService_Basic tests basic DeadCodeService functionality
func TestDeadCodeService_Basic(t *testing.T) {
	service := NewDeadCodeService()

	t.Run("NewDeadCodeService creates instance", func(t *testing.T) {
		assert.NotNil(t, service)
		assert.NotNil(t, service.parser)
	})

	t.Run("sortFiles handles empty slice", func(t *testing.T) {
		var files []domain.FileDeadCode
		result := service.sortFiles(files, domain.DeadCodeSortByFile)
		assert.Equal(t, 0, len(result))
	})

	t.Run("filterFiles handles empty slice", func(t *testing.T) {
		var files []domain.FileDeadCode
		req := domain.DeadCodeRequest{} // Use default values
		result := service.filterFiles(files, req)
		assert.Equal(t, 0, len(result))
	})

	t.Run("generateSummary handles empty data", func(t *testing.T) {
		var files []domain.FileDeadCode
		req := domain.DeadCodeRequest{}
		summary := service.generateSummary(files, 0, req)

		assert.Equal(t, 0, summary.TotalFindings)
	})
}

// TestServiceIntegration_Basic tests basic service integration
func TestServiceIntegration_Basic(t *testing.T) {
	t.Run("All services can be created", func(t *testing.T) {
		complexityService := NewComplexityService()
		deadCodeService := NewDeadCodeService()
		fileReader := NewFileReader()
		outputFormatter := NewOutputFormatter()

		assert.NotNil(t, complexityService)
		assert.NotNil(t, deadCodeService)
		assert.NotNil(t, fileReader)
		assert.NotNil(t, outputFormatter)
	})
}

package discovery

import (
	"strings"

	"github.com/ingo/depviz/pkg/types"
)

// classifyPythonFile classifies a Python file by its filename.
// Test files match test_*.py or *_test.py patterns.
func classifyPythonFile(name string) types.FileClass {
	base := strings.TrimSuffix(name, ".py")
	if strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test") || base == "conftest" {
		return types.ClassTest
	}
	if strings.HasPrefix(name, "_") && name != "__init__.py" {
		return types.ClassExcluded
	}
	return types.ClassSource
}

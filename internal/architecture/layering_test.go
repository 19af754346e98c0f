package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImport = "chalk/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// sourceImports walks root and calls visit with every chalk module import of
// every non-test Go file.
func sourceImports(t *testing.T, root string, visit func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.Contains(importPath, modulesImport) {
				visit(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	sourceImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := moduleName(file), layerOf(file)
		if module == "" || layer == "" {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", file, layer, importPath)
		}
	})
}

// The UI talks to modules through their inbound ports and DTOs only.
func TestUIImportsOnlyPortsAndDTOs(t *testing.T) {
	t.Parallel()
	sourceImports(t, filepath.Join("..", "ui"), func(file, importPath string) {
		if !isPortIn(importPath) && !isDTO(importPath) {
			t.Errorf("ui file %s reaches into %s", file, importPath)
		}
	})
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func layerOf(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.Contains(importPath, modulesImport+module+"/") {
		// another module is reachable through its inbound port only
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain", "dto":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/")
	default:
		return false
	}
}

func TestLayerRuleExamples(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"classroom", "adapter/out", modulesImport + "lesson/port/in", false},
		{"classroom", "adapter/out", modulesImport + "lesson/service", true},
		{"classroom", "usecase", modulesImport + "classroom/adapter/out", true},
		{"classroom", "usecase", modulesImport + "classroom/service", false},
		{"lesson", "domain", modulesImport + "lesson/service", true},
		{"session", "adapter/in", modulesImport + "session/domain", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Fatalf("violatesLayerRule(%s, %s, %s) = %t, want %t", tc.module, tc.layer, tc.importPath, got, tc.want)
		}
	}
}

package analyser

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/ludo-technologies/reposcan/domain"
)

// pythonStdlib lists common standard library modules excluded from the
// imported-modules result.
var pythonStdlib = map[string]bool{
	"abc": true, "argparse": true, "asyncio": true, "collections": true,
	"dataclasses": true, "datetime": true, "enum": true, "functools": true,
	"hashlib": true, "io": true, "itertools": true, "json": true,
	"logging": true, "math": true, "os": true, "pathlib": true,
	"random": true, "re": true, "shutil": true, "string": true,
	"subprocess": true, "sys": true, "tempfile": true, "time": true,
	"typing": true, "unittest": true,
}

// CodePython analyses Python source files: docstring coverage and imported
// third-party modules.
type CodePython struct{}

// NewCodePython creates the Python code analyser
func NewCodePython() *CodePython {
	return &CodePython{}
}

// Type returns the analyser category
func (a *CodePython) Type() domain.AnalyserType {
	return domain.TypeCode
}

// Name returns the analyser name
func (a *CodePython) Name() string {
	return "Python Code"
}

// Includes returns the Python source pattern
func (a *CodePython) Includes(root string) []string {
	return []string{"*.py"}
}

// Excludes prunes bytecode caches
func (a *CodePython) Excludes(root string) []string {
	return []string{"__pycache__/"}
}

// AnalyseFile parses one Python file and collects definition and docstring
// counts plus imported modules.
func (a *CodePython) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	source, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	defer tree.Close()

	stats := &pythonFileStats{modules: make(map[string]bool)}
	rootNode := tree.RootNode()

	stats.definitions++
	if hasDocstring(rootNode) {
		stats.documented++
	}
	collect(rootNode, source, stats)

	modules := make([]string, 0, len(stats.modules))
	for module := range stats.modules {
		if !pythonStdlib[module] {
			modules = append(modules, module)
		}
	}
	sort.Strings(modules)

	return domain.FileResult{
		"definitions": stats.definitions,
		"documented":  stats.documented,
		"modules":     modules,
	}, nil
}

// AnalyseResults reports aggregate docstring coverage over all Python files
func (a *CodePython) AnalyseResults(results domain.AnalyserResult, reporter *domain.Reporter) error {
	definitions, documented := 0, 0
	for _, result := range results {
		if n, ok := result["definitions"].(int); ok {
			definitions += n
		}
		if n, ok := result["documented"].(int); ok {
			documented += n
		}
	}

	if missing := definitions - documented; missing > 0 {
		reporter.AddSuggestion(fmt.Sprintf(
			"%d of %d Python definitions are missing docstrings.", missing, definitions))
	}
	return nil
}

type pythonFileStats struct {
	definitions int
	documented  int
	modules     map[string]bool
}

// collect walks the syntax tree counting definitions, docstrings and imports
func collect(node *sitter.Node, source []byte, stats *pythonFileStats) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "function_definition", "class_definition":
			stats.definitions++
			if hasDocstring(child) {
				stats.documented++
			}

		case "import_statement":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				name := child.NamedChild(j)
				if name.Type() == "aliased_import" {
					name = name.ChildByFieldName("name")
				}
				if name != nil && name.Type() == "dotted_name" {
					stats.modules[topModule(name.Content(source))] = true
				}
			}

		case "import_from_statement":
			if name := child.ChildByFieldName("module_name"); name != nil && name.Type() == "dotted_name" {
				stats.modules[topModule(name.Content(source))] = true
			}
		}

		collect(child, source, stats)
	}
}

// hasDocstring reports whether a module, class or function node starts with
// a string expression.
func hasDocstring(node *sitter.Node) bool {
	body := node
	if node.Type() != "module" {
		body = node.ChildByFieldName("body")
		if body == nil {
			return false
		}
	}
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return false
	}
	expr := first.NamedChild(0)
	return expr != nil && expr.Type() == "string"
}

func topModule(dotted string) string {
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			return dotted[:i]
		}
	}
	return dotted
}

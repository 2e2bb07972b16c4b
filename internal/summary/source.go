package summary

import (
	"bytes"
	goast "go/ast"
	goparser "go/parser"
	"go/token"

	pyast "github.com/go-python/gpython/ast"
	pyparser "github.com/go-python/gpython/parser"
	"mvdan.cc/sh/v3/syntax"
)

// SourceCode summarises a program by the function definitions it contains.
// Each language plugs in its own parser; the output format is shared.
type SourceCode struct {
	language  string
	functions func(content []byte) ([]string, error)
}

// PythonSource returns the SourceCode variant for Python.
func PythonSource() SourceCode {
	return SourceCode{language: "python", functions: pythonFunctions}
}

// GoSource returns the SourceCode variant for Go.
func GoSource() SourceCode {
	return SourceCode{language: "go", functions: goFunctions}
}

// ShellSource returns the SourceCode variant for POSIX and bash scripts.
func ShellSource() SourceCode {
	return SourceCode{language: "shell", functions: shellFunctions}
}

// Name identifies the variant and its language.
func (s SourceCode) Name() string { return "source/" + s.language }

// Summarize lists every function defined anywhere in content, in source order.
func (s SourceCode) Summarize(content []byte) (string, error) {
	names, err := s.functions(content)
	if err != nil {
		return "", err
	}

	return joinOr("Functions detected: ", names, "No functions detected"), nil
}

// pythonFunctions walks the module tree, so nested and method definitions count
// too. Names come out in source order (depth first). The tree parser only knows
// Python 3.4 grammar; source it rejects (f-strings, annotations, async def, the
// walrus operator, match) is scanned lexically instead, and the parser's error
// is kept only when that scan fails as well.
func pythonFunctions(content []byte) ([]string, error) {
	tree, err := pyparser.Parse(bytes.NewReader(content), "<source>", "exec")
	if err != nil {
		names, scanErr := scanPythonDefs(content)
		if scanErr != nil {
			return nil, err
		}

		return names, nil
	}

	var names []string

	pyast.Walk(tree, func(node pyast.Ast) bool {
		if fn, ok := node.(*pyast.FunctionDef); ok {
			names = append(names, string(fn.Name))
		}

		return true
	})

	return names, nil
}

func goFunctions(content []byte) ([]string, error) {
	file, err := goparser.ParseFile(token.NewFileSet(), "", content, goparser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var names []string

	goast.Inspect(file, func(node goast.Node) bool {
		if fn, ok := node.(*goast.FuncDecl); ok {
			names = append(names, fn.Name.Name)
		}

		return true
	})

	return names, nil
}

func shellFunctions(content []byte) ([]string, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(bytes.NewReader(content), "")
	if err != nil {
		return nil, err
	}

	var names []string

	syntax.Walk(file, func(node syntax.Node) bool {
		if fn, ok := node.(*syntax.FuncDecl); ok && fn.Name != nil {
			names = append(names, fn.Name.Value)
		}

		return true
	})

	return names, nil
}

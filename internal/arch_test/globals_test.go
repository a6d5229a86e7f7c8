package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

// TestNoMutableGlobalState flags package-level vars that are not one of the
// constant-like forms: error sentinels, blank interface checks, sync
// primitives and inline literals (lookup tables included). Anything else
// belongs in a struct that is passed around.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			for _, file := range parsePkg(t, pkg, 0) {
				for _, decl := range file.Decls {
					gd, ok := decl.(*ast.GenDecl)
					if !ok || gd.Tok != token.VAR {
						continue
					}
					for _, spec := range gd.Specs {
						vs := spec.(*ast.ValueSpec)
						for i, name := range vs.Names {
							var val ast.Expr
							if i < len(vs.Values) {
								val = vs.Values[i]
							}
							if name.Name == "_" || constantLike(vs.Type, val) {
								continue
							}
							t.Errorf("mutable global state in %s: var %s; use dependency injection or move to a function", pkg, name.Name)
						}
					}
				}
			}
		})
	}
}

func constantLike(typ, val ast.Expr) bool {
	if ident, ok := typ.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}
	if sel, ok := typ.(*ast.SelectorExpr); ok {
		if pkg, ok := sel.X.(*ast.Ident); ok && (pkg.Name == "sync" || pkg.Name == "atomic") {
			return true
		}
	}

	switch v := val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		return isCall(v, "errors", "New") || isCall(v, "fmt", "Errorf")
	}
	return false
}

func isCall(call *ast.CallExpr, pkg, fn string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == pkg && sel.Sel.Name == fn
}

func TestConstantLike(t *testing.T) {
	t.Parallel()

	src := `package p
var (
	errA  = errors.New("a")
	table = map[int]string{1: "one"}
	names = [...]string{"x"}
	limit = 3
	mu    sync.Mutex
	clock = time.Now()
	cache map[string]int
)`
	file, err := parser.ParseFile(token.NewFileSet(), "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"errA": true, "table": true, "names": true, "limit": true, "mu": true, "clock": false, "cache": false}
	for _, spec := range file.Decls[0].(*ast.GenDecl).Specs {
		vs := spec.(*ast.ValueSpec)
		var val ast.Expr
		if len(vs.Values) > 0 {
			val = vs.Values[0]
		}
		name := vs.Names[0].Name
		if got := constantLike(vs.Type, val); got != want[name] {
			t.Errorf("constantLike(%s) = %v, want %v", name, got, want[name])
		}
	}
}

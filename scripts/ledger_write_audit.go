// ledger_write_audit reports how services reach ledger writes. Balance and job
// state may only change through the aggregates; any service method calling a
// ledger repo write directly is listed as residual and fails the run.
//
//	go run ./scripts/ledger_write_audit.go [module-root]
package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type methodStats struct {
	Service         string   `json:"service"`
	Method          string   `json:"method"`
	File            string   `json:"file"`
	Line            int      `json:"line"`
	RepoWrites      []string `json:"repo_writes,omitempty"`
	AggregateWrites []string `json:"aggregate_writes,omitempty"`
}

type auditReport struct {
	ResidualRepoWriteCallsites int           `json:"residual_repo_write_callsites"`
	AggregateWriteCallsites    int           `json:"aggregate_write_callsites"`
	Residual                   []methodStats `json:"residual"`
	AggregateOwned             []methodStats `json:"aggregate_owned"`
}

// fieldKinds maps a service struct field to "repo" or "aggregate".
type fieldKinds map[string]string

var repoWriteMethods = map[string]bool{
	"Create":   true,
	"MarkPaid": true,
	"Credit":   true,
	"Debit":    true,
}

var aggregateWriteMethods = map[string]bool{
	"Settle":  true,
	"Deposit": true,
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	servicesDir := filepath.Join(root, "internal", "services")
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, servicesDir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}, 0)
	if err != nil {
		exitf("parse dir: %v", err)
	}
	pkg, ok := pkgs["services"]
	if !ok {
		exitf("services package not found in %s", servicesDir)
	}

	structs := map[string]fieldKinds{}
	for _, f := range pkg.Files {
		collectFields(f, structs)
	}

	var methods []methodStats
	for path, f := range pkg.Files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		methods = append(methods, collectMethods(fset, f, filepath.ToSlash(rel), structs)...)
	}

	report := buildReport(methods)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exitf("marshal report: %v", err)
	}
	fmt.Println(string(out))
	if report.ResidualRepoWriteCallsites > 0 {
		os.Exit(2)
	}
}

func collectFields(file *ast.File, out map[string]fieldKinds) {
	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || st.Fields == nil {
			return false
		}
		kinds := fieldKinds{}
		for _, field := range st.Fields.List {
			sel, ok := field.Type.(*ast.SelectorExpr)
			if !ok || len(field.Names) == 0 {
				continue
			}
			pkgIdent, ok := sel.X.(*ast.Ident)
			if !ok {
				continue
			}
			kind := ""
			switch {
			case pkgIdent.Name == "repos" && strings.HasSuffix(sel.Sel.Name, "Repo"):
				kind = "repo"
			case pkgIdent.Name == "domainagg" && strings.HasSuffix(sel.Sel.Name, "Aggregate"):
				kind = "aggregate"
			default:
				continue
			}
			for _, name := range field.Names {
				kinds[name.Name] = kind
			}
		}
		if len(kinds) > 0 {
			out[ts.Name.Name] = kinds
		}
		return false
	})
}

func collectMethods(fset *token.FileSet, file *ast.File, relFile string, structs map[string]fieldKinds) []methodStats {
	var out []methodStats
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || fd.Body == nil || len(fd.Recv.List) == 0 {
			continue
		}
		recvName, recvType := receiver(fd.Recv.List[0])
		kinds, ok := structs[recvType]
		if !ok || recvName == "" {
			continue
		}

		repoWrites := map[string]bool{}
		aggWrites := map[string]bool{}
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			fnSel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			fieldSel, ok := fnSel.X.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if base, ok := fieldSel.X.(*ast.Ident); !ok || base.Name != recvName {
				return true
			}
			field, method := fieldSel.Sel.Name, fnSel.Sel.Name
			switch kinds[field] {
			case "repo":
				if repoWriteMethods[method] {
					repoWrites[field+"."+method] = true
				}
			case "aggregate":
				if aggregateWriteMethods[method] {
					aggWrites[field+"."+method] = true
				}
			}
			return true
		})

		out = append(out, methodStats{
			Service:         recvType,
			Method:          fd.Name.Name,
			File:            relFile,
			Line:            fset.Position(fd.Pos()).Line,
			RepoWrites:      sortedKeys(repoWrites),
			AggregateWrites: sortedKeys(aggWrites),
		})
	}
	return out
}

func buildReport(methods []methodStats) auditReport {
	sort.Slice(methods, func(i, j int) bool {
		if methods[i].File == methods[j].File {
			return methods[i].Line < methods[j].Line
		}
		return methods[i].File < methods[j].File
	})
	var r auditReport
	for _, m := range methods {
		if len(m.RepoWrites) > 0 {
			r.ResidualRepoWriteCallsites += len(m.RepoWrites)
			r.Residual = append(r.Residual, m)
		}
		if len(m.AggregateWrites) > 0 {
			r.AggregateWriteCallsites += len(m.AggregateWrites)
			r.AggregateOwned = append(r.AggregateOwned, m)
		}
	}
	return r
}

func receiver(field *ast.Field) (string, string) {
	if field == nil || len(field.Names) == 0 {
		return "", ""
	}
	name := field.Names[0].Name
	switch t := field.Type.(type) {
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return name, id.Name
		}
	case *ast.Ident:
		return name, t.Name
	}
	return "", ""
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Package archcheck enforces the import rules between bounded contexts and
// between the layers of a service.
package archcheck

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "photocontest"

// Shared contracts every layer may depend on.
var contractPackages = []string{
	modulePath + "/contracts/errkind",
	modulePath + "/contracts/identity",
	modulePath + "/contracts/paging",
	modulePath + "/contracts/gen",
}

type Violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d imports %q (%s)", v.File, v.Line, v.Import, v.Rule)
}

// Check walks contexts/ and contracts/ under root and returns every import
// that breaks a boundary rule, sorted by file and line. Test files are skipped.
func Check(root string) ([]Violation, error) {
	var violations []Violation
	for _, dir := range []string{"contexts", "contracts"} {
		base := filepath.Join(root, dir)
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			found, err := checkFile(path, filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			violations = append(violations, found...)
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})
	return violations, nil
}

func checkFile(path string, rel string) ([]Violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}

	rules := rulesFor(rel)
	var found []Violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		for _, rule := range rules {
			if msg := rule(importPath); msg != "" {
				found = append(found, Violation{
					File:   rel,
					Line:   fset.Position(imp.Pos()).Line,
					Import: importPath,
					Rule:   msg,
				})
			}
		}
	}
	return found, nil
}

type rule func(importPath string) string

func rulesFor(rel string) []rule {
	parts := strings.Split(rel, "/")
	if parts[0] == "contracts" {
		return []rule{contractsRule}
	}
	if len(parts) < 4 {
		return nil
	}

	service := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
	rules := []rule{isolationRule(service)}
	if len(parts) == 4 {
		// module.go wires the service together.
		return rules
	}

	own := func(layers ...string) []string {
		prefixes := make([]string, 0, len(layers)+len(contractPackages))
		for _, layer := range layers {
			prefixes = append(prefixes, service+"/"+layer)
		}
		return append(prefixes, contractPackages...)
	}
	switch layer := parts[3]; layer {
	case "domain":
		rules = append(rules, allowlistRule(layer, own("domain")))
	case "ports":
		rules = append(rules, allowlistRule(layer, own("domain", "ports")))
	case "application":
		rules = append(rules, allowlistRule(layer, own("application", "domain", "ports")))
	case "transport":
		rules = append(rules, allowlistRule(layer, own("domain", "transport")))
	case "adapters":
		rules = append(rules, func(importPath string) string {
			if hasPrefix(importPath, modulePath+"/internal") {
				return "adapters must not import process infrastructure"
			}
			return ""
		})
	}
	return rules
}

func isolationRule(service string) rule {
	return func(importPath string) string {
		if hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, service) {
			return "services must not import each other"
		}
		return ""
	}
}

func allowlistRule(layer string, allowed []string) rule {
	return func(importPath string) string {
		if isStdlib(importPath) {
			return ""
		}
		for _, prefix := range allowed {
			if hasPrefix(importPath, prefix) {
				return ""
			}
		}
		return layer + " import is outside its allowlist"
	}
}

func contractsRule(importPath string) string {
	if isStdlib(importPath) {
		return ""
	}
	if hasPrefix(importPath, modulePath+"/contracts") {
		return ""
	}
	return "contracts may only import the standard library and other contracts"
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

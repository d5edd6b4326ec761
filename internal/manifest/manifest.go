// Package manifest inventories package.json files near the working
// directory so the operator can see which projects declare dev servers.
// This is an auxiliary view: it reads manifests only, never writes.
package manifest

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Package is one project manifest.
type Package struct {
	Name         string
	Version      string
	Scripts      []string
	Dependencies int
	HasDevServer bool
	Path         string
}

// Directories never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
}

var devServerScripts = []string{"dev", "start", "serve"}

var devServerTokens = []string{
	"vite",
	"webpack-dev-server",
	"next dev",
	"nodemon",
	"react-scripts start",
	"nuxt dev",
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Scan walks root up to maxDepth directory levels collecting manifests.
// Unreadable or malformed files are skipped silently; they are expected
// noise in a working tree, not errors.
func Scan(root string, maxDepth int) ([]Package, error) {
	root = filepath.Clean(root)
	var pkgs []Package

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if depthOf(root, path) > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != "package.json" {
			return nil
		}
		if pkg, ok := readManifest(path); ok {
			pkgs = append(pkgs, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Path < pkgs[j].Path })
	return pkgs, nil
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func readManifest(path string) (Package, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Package{}, false
	}
	var raw packageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Package{}, false
	}

	scripts := make([]string, 0, len(raw.Scripts))
	for name := range raw.Scripts {
		scripts = append(scripts, name)
	}
	sort.Strings(scripts)

	return Package{
		Name:         raw.Name,
		Version:      raw.Version,
		Scripts:      scripts,
		Dependencies: len(raw.Dependencies) + len(raw.DevDependencies),
		HasDevServer: hasDevServer(raw.Scripts),
		Path:         path,
	}, true
}

func hasDevServer(scripts map[string]string) bool {
	for name, body := range scripts {
		for _, known := range devServerScripts {
			if name == known {
				return true
			}
		}
		lower := strings.ToLower(body)
		for _, token := range devServerTokens {
			if strings.Contains(lower, token) {
				return true
			}
		}
	}
	return false
}

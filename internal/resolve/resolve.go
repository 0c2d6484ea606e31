// Package resolve computes site-root-relative resource paths. Every path it
// returns is derived from an absolute root fixed at startup, so results never
// depend on the process working directory.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for resolution failures.
var (
	ErrRootNotFound        = errors.New("site root not found")
	ErrResourceDirNotFound = errors.New("resource directory not found")
	ErrFileNotFound        = errors.New("resource file not found")
	ErrPathEscapesRoot     = errors.New("path escapes site root")
)

const pagesDirName = "pages"

// parentHops is how many directories separate a page file from the site root:
// pages live directly under <root>/pages/.
const parentHops = 1

// Resolver resolves resource directories and files against a fixed site root.
type Resolver struct {
	root string
}

// New creates a Resolver rooted at siteDir. The directory must exist and
// contain a pages/ subdirectory.
func New(siteDir string) (*Resolver, error) {
	abs, err := filepath.Abs(siteDir)
	if err != nil {
		return nil, fmt.Errorf("resolve site dir: %w", err)
	}
	if !isDir(abs) {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, abs)
	}
	if !isDir(filepath.Join(abs, pagesDirName)) {
		return nil, fmt.Errorf("%w: %s has no %s directory", ErrRootNotFound, abs, pagesDirName)
	}
	return &Resolver{root: abs}, nil
}

// Root returns the absolute site root.
func (r *Resolver) Root() string { return r.root }

// PagesDir returns the absolute pages directory.
func (r *Resolver) PagesDir() string { return filepath.Join(r.root, pagesDirName) }

// RootFromPage derives the site root from the path of a page file by walking
// up a fixed number of parent directories. It fails when the derived root
// does not contain a pages/ directory.
func RootFromPage(pagePath string) (string, error) {
	abs, err := filepath.Abs(pagePath)
	if err != nil {
		return "", fmt.Errorf("resolve page path: %w", err)
	}
	dir := filepath.Dir(abs)
	for i := 0; i < parentHops; i++ {
		dir = filepath.Dir(dir)
	}
	if !isDir(filepath.Join(dir, pagesDirName)) {
		return "", fmt.Errorf("%w: derived %s from %s", ErrRootNotFound, dir, pagePath)
	}
	return dir, nil
}

// ResourceDir resolves a named resource directory. The original layout keeps
// chart, table and image directories under pages/ and bulk data directories
// at the root, so the page-local location is probed first.
func (r *Resolver) ResourceDir(name string) (string, error) {
	if err := checkComponent(name); err != nil {
		return "", err
	}
	candidates := []string{
		filepath.Join(r.root, pagesDirName, name),
		filepath.Join(r.root, name),
	}
	for _, c := range candidates {
		if isDir(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrResourceDirNotFound, name)
}

// ResourceFile resolves a file inside a named resource directory. The file
// must exist and the joined path must stay inside the site root.
func (r *Resolver) ResourceFile(dir, file string) (string, error) {
	if err := checkComponent(file); err != nil {
		return "", err
	}
	d, err := r.ResourceDir(dir)
	if err != nil {
		return "", err
	}
	p := filepath.Join(d, file)
	if !strings.HasPrefix(p, r.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, file)
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s/%s", ErrFileNotFound, dir, file)
	}
	return p, nil
}

// checkComponent rejects empty names and anything that could traverse out of
// the resolved directory.
func checkComponent(name string) error {
	if name == "" || name == "." {
		return fmt.Errorf("%w: empty name", ErrPathEscapesRoot)
	}
	if name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %s", ErrPathEscapesRoot, name)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

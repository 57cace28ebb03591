// Package hcldecl loads class declarations from .hcl files and translates
// them into the format-agnostic model.
package hcldecl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/classkit/internal/ctxlog"
	"github.com/vk/classkit/internal/model"
	"github.com/vk/classkit/internal/propflag"
	"github.com/vk/classkit/internal/schema"
)

// Loader parses declaration files against a flag registry. The registry must
// be fully populated before loading; annotation keywords are resolved during
// translation.
type Loader struct {
	flags *propflag.Registry
}

// NewLoader creates a declaration loader bound to the given flag registry.
func NewLoader(flags *propflag.Registry) *Loader {
	return &Loader{flags: flags}
}

// Load orchestrates the declaration loading process. It is agnostic to the
// origin of the paths: files are parsed in discovery order, and classes
// within a file in declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*model.ClassDefinition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Declaration loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered declaration files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*model.ClassDefinition

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse declaration file %s: %w", file, diags)
		}
		fileDefs, err := l.translateFile(hclFile.Body, file)
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}

	logger.Debug("Declaration loading complete.", "classes", len(defs))
	return defs, nil
}

// LoadSource parses a single in-memory declaration source. Filename is used
// in diagnostics only.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) ([]*model.ClassDefinition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing in-memory declaration source.", "filename", filename)

	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse declaration source %s: %w", filename, diags)
	}
	return l.translateFile(hclFile.Body, filename)
}

// translateFile decodes every class block in a file body. Declaration
// diagnostics are collected across the whole file before failing, so one bad
// class does not hide problems in its siblings.
func (l *Loader) translateFile(body hcl.Body, filename string) ([]*model.ClassDefinition, error) {
	var root schema.FileRoot
	diags := gohcl.DecodeBody(body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode declaration file %s: %w", filename, diags)
	}

	var defs []*model.ClassDefinition
	for _, raw := range root.Classes {
		def, classDiags := model.DecodeClass(raw, l.flags)
		diags = append(diags, classDiags...)
		if classDiags.HasErrors() {
			continue
		}
		defs = append(defs, def)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid class declarations in %s: %w", filename, diags)
	}
	return defs, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					if _, wasSeen := seen[p]; !wasSeen {
						allFiles = append(allFiles, p)
						seen[p] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}

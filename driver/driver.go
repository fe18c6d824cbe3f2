// Package driver runs the compile pipeline over schema files: read, parse,
// lower, generate for every target, and write.
//
// A file either compiles for every requested target or contributes
// nothing; its outputs are written only after all of them were generated.
// Files are independent and compiled concurrently.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/tser/am"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/frontend"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
)

// Compile parses src and generates it for every target.
//
// The result maps each target's language name to the generated file. On
// any failure nothing is returned.
func Compile(src []byte, filename string, targets []typegen.Target) (map[string]string, error) {
	_, out, err := compile(src, filename, targets)
	return out, err
}

func compile(src []byte, filename string, targets []typegen.Target) (*ir.File, map[string]string, error) {
	file, err := frontend.ParseFile(filename, src)
	if err != nil {
		return nil, nil, err
	}

	out := make(map[string]string, len(targets))
	for _, t := range targets {
		code, err := typegen.Generate(file, t.Generator)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s: %s", filename, t.Language)
		}
		out[t.Language] = code
	}
	return file, out, nil
}

// Driver compiles schema files with a fixed configuration.
type Driver struct {
	cfg     *am.Config
	targets []typegen.Target
	log     *zap.SugaredLogger
}

// New resolves the configured targets. A nil logger discards output.
func New(cfg *am.Config, log *zap.SugaredLogger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	targets, err := cfg.Targets()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{cfg: cfg, targets: targets, log: log.Named("driver")}, nil
}

// Targets returns the resolved targets in generation order.
func (d *Driver) Targets() []typegen.Target {
	out := make([]typegen.Target, len(d.targets))
	copy(out, d.targets)
	return out
}

// unit is one schema file and what it produced.
type unit struct {
	path    string
	module  string
	file    *ir.File
	outputs []typegen.Output
	err     error
}

// Outputs compiles files concurrently and returns their outputs in file
// order, followed by the index files when generate.index is set.
//
// Every file is attempted. Failures are joined into the returned error and
// the outputs of the files that did compile are still returned; index files
// are only produced when every file compiled.
func (d *Driver) Outputs(ctx context.Context, files []string) ([]typegen.Output, error) {
	units, err := d.units(files)
	if err != nil {
		return nil, err
	}
	d.compileAll(ctx, units, nil)

	outputs, err := d.collect(units)
	if err != nil {
		return outputs, err
	}
	if d.cfg.Generate.Index {
		outputs = append(outputs, d.indexes(units)...)
	}
	return outputs, nil
}

// Run compiles files and writes each one's outputs under the output
// directory as soon as it has compiled, then writes the index files.
// It returns the outputs that were generated.
func (d *Driver) Run(ctx context.Context, files []string) ([]typegen.Output, error) {
	if err := d.cfg.ValidateForWrite(); err != nil {
		return nil, err
	}
	units, err := d.units(files)
	if err != nil {
		return nil, err
	}

	d.compileAll(ctx, units, func(u *unit) error {
		return d.write(u.outputs)
	})

	outputs, err := d.collect(units)
	if err != nil {
		return outputs, err
	}
	if d.cfg.Generate.Index {
		indexes := d.indexes(units)
		if err := d.write(indexes); err != nil {
			return outputs, err
		}
		outputs = append(outputs, indexes...)
	}
	return outputs, nil
}

// Check compiles files and compares the result with the output directory.
func (d *Driver) Check(ctx context.Context, files []string) (*typegen.CheckResult, error) {
	if err := d.cfg.ValidateForWrite(); err != nil {
		return nil, err
	}
	outputs, err := d.Outputs(ctx, files)
	if err != nil {
		return nil, err
	}
	return typegen.CompareOutputs(outputs, d.cfg.Generate.Output)
}

func (d *Driver) units(files []string) ([]*unit, error) {
	if len(files) == 0 {
		return nil, errors.WithHint(
			errors.New("no schema files to compile"),
			"pass files as arguments or set generate.sources in am.toml")
	}

	units := make([]*unit, len(files))
	seen := make(map[string]string, len(files))
	for i, path := range files {
		module := ModuleName(path)
		if prev, ok := seen[module]; ok {
			return nil, errors.WithHint(
				errors.Newf("%s and %s both generate module %q", prev, path, module),
				"schema files need distinct base names; each target writes one flat directory")
		}
		if index, ok := d.indexCollision(module); ok {
			return nil, errors.WithHint(
				errors.Newf("%s generates module %q, which would be overwritten by the index %s", path, module, index),
				"rename the schema file or set generate.index = false")
		}
		seen[module] = path
		units[i] = &unit{path: path, module: module}
	}
	return units, nil
}

// indexCollision reports the index file a module's output would share a
// path with when index modules are enabled.
func (d *Driver) indexCollision(module string) (string, bool) {
	if !d.cfg.Generate.Index {
		return "", false
	}
	for _, t := range d.targets {
		ix, ok := t.Generator.(typegen.Indexer)
		if ok && module+"."+t.Extension == ix.IndexFile() {
			return filepath.Join(t.Language, ix.IndexFile()), true
		}
	}
	return "", false
}

// compileAll compiles every unit, at most generate.jobs at a time. after,
// when set, runs on each unit that compiled and its error is recorded on
// the unit.
func (d *Driver) compileAll(ctx context.Context, units []*unit, after func(*unit) error) {
	var g errgroup.Group
	g.SetLimit(d.cfg.Generate.Jobs)

	for _, u := range units {
		u := u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				u.err = errors.Wrapf(err, "%s", u.path)
				return nil
			}
			u.err = d.compileUnit(u)
			if u.err == nil && after != nil {
				u.err = after(u)
			}
			return nil
		})
	}
	// Goroutines report through their unit.
	_ = g.Wait()
}

func (d *Driver) compileUnit(u *unit) error {
	start := time.Now()
	src, err := os.ReadFile(u.path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", u.path)
	}

	file, generated, err := compile(src, u.path, d.targets)
	if err != nil {
		d.log.Debugw("compile failed", "file", u.path, "unsupported", errors.IsUnsupported(err), "error", err)
		return err
	}

	u.file = file
	u.outputs = make([]typegen.Output, 0, len(d.targets))
	for _, t := range d.targets {
		u.outputs = append(u.outputs, typegen.Output{
			Language: t.Language,
			Path:     filepath.Join(t.Language, u.module+"."+t.Extension),
			Content:  generated[t.Language],
		})
	}
	d.log.Infow("compiled", "file", u.path, "items", len(file.Items), "targets", len(d.targets), "took", time.Since(start))
	return nil
}

func (d *Driver) collect(units []*unit) ([]typegen.Output, error) {
	var (
		outputs []typegen.Output
		errs    []error
	)
	for _, u := range units {
		if u.err != nil {
			errs = append(errs, u.err)
			continue
		}
		outputs = append(outputs, u.outputs...)
	}
	if len(errs) > 0 {
		return outputs, errors.Join(errs...)
	}
	return outputs, nil
}

// indexes renders the index of every target whose generator has one.
func (d *Driver) indexes(units []*unit) []typegen.Output {
	modules := make([]typegen.Module, len(units))
	for i, u := range units {
		modules[i] = typegen.Module{Name: u.module, File: u.file}
	}

	var out []typegen.Output
	for _, t := range d.targets {
		ix, ok := t.Generator.(typegen.Indexer)
		if !ok {
			continue
		}
		out = append(out, typegen.Output{
			Language: t.Language,
			Path:     filepath.Join(t.Language, ix.IndexFile()),
			Content:  ix.GenerateIndex(modules),
		})
	}
	return out
}

// write stores outputs under the output directory. Files whose content is
// already current are left untouched.
func (d *Driver) write(outputs []typegen.Output) error {
	for _, out := range outputs {
		path := filepath.Join(d.cfg.Generate.Output, out.Path)
		if existing, err := os.ReadFile(path); err == nil && string(existing) == out.Content {
			d.log.Debugw("unchanged", "path", path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
		}
		if err := os.WriteFile(path, []byte(out.Content), am.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		d.log.Debugw("wrote", "path", path)
	}
	return nil
}

// ModuleName is the generated module name of a schema file: its base name
// without the .ts or .d.ts extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".d.ts", ".ts"} {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Sources expands glob patterns into schema files, sorted and without
// duplicates. A pattern that matches nothing is an error.
func Sources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid source pattern %q", pattern)
		}
		if len(matches) == 0 {
			return nil, errors.Newf("source pattern %q matches no files", pattern)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				continue
			}
			clean := filepath.Clean(m)
			if !seen[clean] {
				seen[clean] = true
				files = append(files, clean)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

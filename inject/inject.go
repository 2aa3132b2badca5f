// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/fsutil"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/skillname"
)

const filePerm = 0o644

// Injector edits editor configuration below a project root.
type Injector struct {
	root   string
	format Format
	logger *slog.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithFormat selects the shared-file format used for new snippets.
func WithFormat(f Format) Option {
	return func(i *Injector) {
		i.format = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Injector) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Injector for the project at root.
func New(root string, opts ...Option) *Injector {
	i := &Injector{
		root:   root,
		format: FormatLegacy,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Format returns the configured format.
func (i *Injector) Format() Format {
	return i.format
}

func (i *Injector) path(rel string) string {
	return filepath.Join(i.root, filepath.FromSlash(rel))
}

// RuleFile returns the per-skill rule file of a RulesFile target.
func (i *Injector) RuleFile(target editors.Target, name string) string {
	return filepath.Join(i.path(target.Definition().RulesDir), name+".mdc")
}

// Inject writes a reference to the skill file at skillPath for target.
func (i *Injector) Inject(target editors.Target, name, skillPath string) error {
	if err := skillname.Validate(name); err != nil {
		return err
	}
	def := target.Definition()

	if def.Strategy == editors.RulesFile {
		file := i.RuleFile(target, name)
		body := fmt.Sprintf(ruleFileFmt, name, name, skillPath)
		if err := fsutil.WriteFileAtomic(file, []byte(body), filePerm); err != nil {
			return storageError(fmt.Errorf("writing rule file %s: %w", file, err))
		}
		i.logger.Debug("wrote rule file", "target", target.String(), "skill", name, "path", file)
		return nil
	}

	file := i.path(def.ConfigFile)
	data, _, err := fsutil.ReadFileIfExists(file)
	if err != nil {
		return storageError(fmt.Errorf("reading %s: %w", file, err))
	}
	current := string(data)

	if hasReference(current, name) {
		i.logger.Debug("reference already present", "target", target.String(), "skill", name, "path", file)
		return nil
	}

	addition := snippet(target, name, skillPath)
	if i.format == FormatFenced {
		addition = fenced(name, addition)
	}

	if err := fsutil.WriteFileAtomic(file, []byte(insertSnippet(current, addition)), filePerm); err != nil {
		return storageError(fmt.Errorf("writing %s: %w", file, err))
	}
	i.logger.Debug("injected skill reference", "target", target.String(), "skill", name, "path", file)
	return nil
}

// Remove deletes every reference to name for target. A missing file is not an error.
func (i *Injector) Remove(target editors.Target, name string) error {
	if err := skillname.Validate(name); err != nil {
		return err
	}
	def := target.Definition()

	if def.Strategy == editors.RulesFile {
		file := i.RuleFile(target, name)
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return storageError(fmt.Errorf("removing rule file %s: %w", file, err))
		}
		return nil
	}

	file := i.path(def.ConfigFile)
	data, ok, err := fsutil.ReadFileIfExists(file)
	if err != nil {
		return storageError(fmt.Errorf("reading %s: %w", file, err))
	}
	if !ok {
		return nil
	}

	updated, changed := removeReferences(string(data), name)
	if !changed {
		return nil
	}
	if err := fsutil.WriteFileAtomic(file, []byte(updated), filePerm); err != nil {
		return storageError(fmt.Errorf("writing %s: %w", file, err))
	}
	i.logger.Debug("removed skill reference", "target", target.String(), "skill", name, "path", file)
	return nil
}

// InjectMemory replaces the memory block of target with block, the rendered
// memory context. An empty block clears it.
func (i *Injector) InjectMemory(target editors.Target, block string) error {
	def := target.Definition()

	if def.MemoryFile != "" {
		file := i.path(def.MemoryFile)
		body := block
		if def.Strategy == editors.RulesFile {
			body = memoryRule + block
		}
		if err := fsutil.WriteFileAtomic(file, []byte(body), filePerm); err != nil {
			return storageError(fmt.Errorf("writing memory file %s: %w", file, err))
		}
		return nil
	}

	file := i.path(def.ConfigFile)
	data, ok, err := fsutil.ReadFileIfExists(file)
	if err != nil {
		return storageError(fmt.Errorf("reading %s: %w", file, err))
	}

	var updated string
	switch {
	case !ok && strings.TrimSpace(block) == "":
		return nil
	case !ok && i.format == FormatFenced:
		updated = wrapMemory(block)
	case !ok:
		updated = appendMemory("", block)
	default:
		updated = replaceMemory(string(data), block, i.format)
	}

	if err := fsutil.WriteFileAtomic(file, []byte(updated), filePerm); err != nil {
		return storageError(fmt.Errorf("writing %s: %w", file, err))
	}
	i.logger.Debug("updated memory context", "target", target.String(), "path", file)
	return nil
}

func storageError(err error) error {
	return skillerr.WithKind(err, skillerr.KindStorage)
}

// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
)

const (
	// MaxExpressionLength is the maximum accepted expression length in bytes.
	MaxExpressionLength = 10000

	// CostLimit is the runtime cost limit of a compiled expression.
	CostLimit = 1000000
)

// Record is the view of an installed skill that expressions evaluate against.
type Record struct {
	Name        string
	URL         string
	Hash        string
	LocalPath   string
	LastUpdated time.Time
	Verified    bool
	Repository  string
	Branch      string
}

func (r Record) activation() map[string]any {
	return map[string]any{
		"name":         r.Name,
		"url":          r.URL,
		"hash":         r.Hash,
		"local_path":   r.LocalPath,
		"last_updated": r.LastUpdated,
		"verified":     r.Verified,
		"repository":   r.Repository,
		"branch":       r.Branch,
	}
}

var recordEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("url", cel.StringType),
		cel.Variable("hash", cel.StringType),
		cel.Variable("local_path", cel.StringType),
		cel.Variable("last_updated", cel.TimestampType),
		cel.Variable("verified", cel.BoolType),
		cel.Variable("repository", cel.StringType),
		cel.Variable("branch", cel.StringType),
	)
})

// Filter is a compiled expression. A nil Filter matches every record.
type Filter struct {
	source  string
	program cel.Program
}

// Compile parses and type checks expr. A blank expression yields a nil
// Filter and no error.
func Compile(expr string) (*Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	if len(expr) > MaxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), MaxExpressionLength)
	}

	env, err := recordEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newExpressionError(StageParse, expr, issues)
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, newExpressionError(StageCheck, expr, issues)
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrInvalidResult, expr, checked.OutputType())
	}

	program, err := env.Program(checked, cel.CostLimit(CostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	return &Filter{source: expr, program: program}, nil
}

// Source returns the expression text.
func (f *Filter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the filter for r.
func (f *Filter) Match(r Record) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, _, err := f.program.Eval(r.activation())
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrInvalidResult, out.Value())
	}
	return matched, nil
}

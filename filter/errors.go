// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for filter operations.
var (
	// ErrExpressionCheck is returned when an expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("filter expression check failed")

	// ErrEvaluation is returned when evaluating an expression fails.
	ErrEvaluation = errors.New("filter expression evaluation failed")

	// ErrInvalidResult is returned when an expression does not produce a bool.
	ErrInvalidResult = errors.New("filter expression must evaluate to a bool")
)

// Stage identifies where compilation failed.
type Stage string

const (
	// StageParse indicates a syntax error.
	StageParse Stage = "parse"
	// StageCheck indicates a type checking error, such as an unknown variable.
	StageCheck Stage = "check"
)

// Issue is one located problem in an expression.
type Issue struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ExpressionError reports why an expression did not compile.
type ExpressionError struct {
	Stage  Stage   `json:"stage"`
	Source string  `json:"source"`
	Issues []Issue `json:"issues,omitempty"`
	err    error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s error in filter %q: %s", e.Stage, e.Source, e.err)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.err
}

func newExpressionError(stage Stage, source string, issues *cel.Issues) error {
	out := &ExpressionError{
		Stage:  stage,
		Source: source,
		Issues: make([]Issue, 0, len(issues.Errors())),
		err:    fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
	for _, e := range issues.Errors() {
		out.Issues = append(out.Issues, Issue{
			Line: e.Location.Line(),
			Col:  e.Location.Column(),
			Msg:  e.Message,
		})
	}
	return out
}

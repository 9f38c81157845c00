// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrStaleTarget marks an operation whose scanned target no longer matches
// the expected node shape at apply time. Under the SkipStale policy these
// operations are skipped rather than aborting the batch.
var ErrStaleTarget = errors.New("stale edit target")

// InvalidPositionError reports a position that does not satisfy schema
// placement rules for the requested operation. The operation is rejected and
// the document is left untouched; this never crashes the editor.
type InvalidPositionError struct {
	Pos    int
	Reason string
}

// Error implements the error interface.
func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %d: %s", e.Pos, e.Reason)
}

// Is supports errors.Is comparison against another InvalidPositionError.
func (e *InvalidPositionError) Is(target error) bool {
	_, ok := target.(*InvalidPositionError)
	return ok
}

// invalidPos is shorthand for building an InvalidPositionError.
func invalidPos(pos int, format string, args ...any) error {
	return &InvalidPositionError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// BatchApplyError reports the first operation of a batch that failed
// validation under the AllOrNothing policy. The prior document state is
// preserved when this is returned.
type BatchApplyError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *BatchApplyError) Error() string {
	return fmt.Sprintf("batch operation %d failed: %v", e.Index, e.Err)
}

// Unwrap returns the underlying operation error.
func (e *BatchApplyError) Unwrap() error { return e.Err }

/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource is not found upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when a request parameter is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream is returned when an external collaborator fails.
	ErrUpstream = errors.New("upstream failure")

	// ErrInternal is returned when an unexpected error occurs.
	ErrInternal = errors.New("internal error")
)

// UpstreamError carries the status and body of a failed upstream call so
// it can be logged for diagnosis. Callers only ever see a generic message.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

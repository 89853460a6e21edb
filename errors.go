/*
 * errors.go, part of gostereo.
 *
 * Copyright 2024 The gostereo authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"fmt"
	"strings"
)

// Error is the interface all errors in this library implement. The Decorate
// method allows adding and retrieving info from the error without changing
// its type or wrapping it around something else. The decoration slice should
// contain the functions in the calling stack, each optionally followed by
// extra info in the format "FunctionName: Extra info". If passed an empty
// string, Decorate just returns the current slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type for conditions that don't belong to the
// request-level taxonomy below (programming errors, bad arguments, etc).
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds dec to the decoration slice, unless dec is empty, and returns
// the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// NewError returns a CError with a formatted message and one decoration.
func NewError(caller, format string, a ...interface{}) *CError {
	err := new(CError)
	err.msg = fmt.Sprintf(format, a...)
	err.Decorate(caller)
	return err
}

// errDecorate asserts that err implements chem.Error and decorates it with the
// caller's name before returning it. Calling it with any other error type is a
// programming mistake, so it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

/*
The request-level error taxonomy. ParseError is fatal for a whole pipeline
run. EmbedError and MinimizeError are per-isomer conditions: the isomer is
dropped and the run continues. NoStableStructure means every isomer was
dropped, which is a distinct terminal outcome from an unparseable input.
*/

// ParseError reports that a notation string could not be turned into a valid
// molecular graph. The offending notation and position are kept for
// diagnostics.
type ParseError struct {
	Notation string
	Position int //byte offset in Notation, -1 if not applicable
	msg      string
	deco     []string
}

func NewParseError(notation string, position int, format string, a ...interface{}) *ParseError {
	return &ParseError{Notation: notation, Position: position, msg: fmt.Sprintf(format, a...)}
}

func (err *ParseError) Error() string {
	if err.Position >= 0 {
		return fmt.Sprintf("parse error at position %d of %q: %s", err.Position, err.Notation, err.msg)
	}
	return fmt.Sprintf("parse error in %q: %s", err.Notation, err.msg)
}

func (err *ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// EmbedError reports that no 3D conformer could be generated for one isomer.
type EmbedError struct {
	msg  string
	deco []string
}

func NewEmbedError(format string, a ...interface{}) *EmbedError {
	return &EmbedError{msg: fmt.Sprintf(format, a...)}
}

func (err *EmbedError) Error() string { return "embedding failed: " + err.msg }

func (err *EmbedError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// MinimizeError reports that the force-field evaluation or minimization of one
// conformer failed, including the non-finite energy case.
type MinimizeError struct {
	msg  string
	deco []string
}

func NewMinimizeError(format string, a ...interface{}) *MinimizeError {
	return &MinimizeError{msg: fmt.Sprintf(format, a...)}
}

func (err *MinimizeError) Error() string { return "minimization failed: " + err.msg }

func (err *MinimizeError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// NoStableStructure reports that every enumerated isomer failed embedding or
// minimization, so there is nothing to rank.
type NoStableStructure struct {
	Total   int //isomers enumerated
	Dropped int //isomers dropped (equals Total)
	deco    []string
}

func (err *NoStableStructure) Error() string {
	return fmt.Sprintf("no stable structure found: all %d enumerated isomers failed 3D embedding or minimization", err.Total)
}

func (err *NoStableStructure) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func NewNoStableStructure(total int) *NoStableStructure {
	return &NoStableStructure{Total: total, Dropped: total}
}

// DecorationString formats the decoration trail of an Error for logging.
func DecorationString(err Error) string {
	return strings.Join(err.Decorate(""), " <- ")
}

/*
 * Copyright (C) 2021-present David Coles
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package bgp

import "fmt"

// DecodeErrorKind classifies a failure to decode a wire message.
type DecodeErrorKind int

const (
	KindTooShort DecodeErrorKind = iota
	KindBadMarker
	KindUnknownType
	KindLengthMismatch
	KindMalformedAttribute
	KindMalformedNlri
)

func (k DecodeErrorKind) String() string {
	switch k {
	case KindTooShort:
		return "TooShort"
	case KindBadMarker:
		return "BadMarker"
	case KindUnknownType:
		return "UnknownType"
	case KindLengthMismatch:
		return "LengthMismatch"
	case KindMalformedAttribute:
		return "MalformedAttribute"
	case KindMalformedNlri:
		return "MalformedNlri"
	default:
		return "Unknown"
	}
}

// DecodeError wraps a DecodeErrorKind with a human-readable detail string.
type DecodeError struct {
	Kind   DecodeErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bgp: decode failed: %s: %s", e.Kind, e.Detail)
}

func newDecodeError(kind DecodeErrorKind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Is supports errors.Is(err, bgp.KindError(bgp.KindTooShort)) style
// matching via a sentinel wrapper, so callers can test the kind without
// type-asserting.
func (e *DecodeError) Is(target error) bool {
	other, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindError constructs a sentinel *DecodeError of the given kind, suitable
// for use with errors.Is(err, bgp.KindError(bgp.KindTooShort)).
func KindError(kind DecodeErrorKind) *DecodeError {
	return &DecodeError{Kind: kind}
}

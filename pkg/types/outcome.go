// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the bioenrich
// pipelines: lookup outcomes, identifier records, and stage configuration.
package types

import (
	"encoding/json"
	"errors"
)

// Sentinel cell values written in place of a real result.
const (
	NoMatchText        = "No match found"
	TransportErrorText = "API Error"
)

// LookupStatus tags a LookupOutcome.
type LookupStatus int

const (
	StatusFound LookupStatus = iota
	StatusNoMatch
	StatusTransportError
)

func (s LookupStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNoMatch:
		return "no_match"
	case StatusTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// LookupOutcome is the result of one remote lookup for one identifier.
// It is never retried or merged with another identifier's outcome.
type LookupOutcome struct {
	Status LookupStatus

	// Values holds the accession (one element) or the PubMed ID list.
	// An empty list with StatusFound is a legitimate "no articles" result.
	Values []string

	// Err is the cause of a TransportError. It is not written to output.
	Err error
}

// Found returns a successful outcome carrying values.
func Found(values ...string) LookupOutcome {
	if values == nil {
		values = []string{}
	}
	return LookupOutcome{Status: StatusFound, Values: values}
}

// NoMatch returns the outcome for a query the service answered with no results.
func NoMatch() LookupOutcome {
	return LookupOutcome{Status: StatusNoMatch}
}

// TransportError returns the outcome for a failed or unparseable request.
func TransportError(err error) LookupOutcome {
	if err == nil {
		err = errors.New("unknown transport error")
	}
	return LookupOutcome{Status: StatusTransportError, Err: err}
}

// OK reports whether the lookup reached the service and got an answer.
func (o LookupOutcome) OK() bool {
	return o.Status != StatusTransportError
}

// Render returns the single-value cell text for the outcome: the first
// value when found, otherwise the matching sentinel.
func (o LookupOutcome) Render() string {
	switch o.Status {
	case StatusFound:
		if len(o.Values) == 0 {
			return ""
		}
		return o.Values[0]
	case StatusNoMatch:
		return NoMatchText
	default:
		return TransportErrorText
	}
}

// RenderList returns the list cell text for the outcome: the values as a
// JSON array when found, otherwise the matching sentinel.
func (o LookupOutcome) RenderList() string {
	switch o.Status {
	case StatusFound:
		values := o.Values
		if values == nil {
			values = []string{}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return TransportErrorText
		}
		return string(data)
	case StatusNoMatch:
		return NoMatchText
	default:
		return TransportErrorText
	}
}

// IdentifierRecord pairs one input identifier with its lookup outcome.
type IdentifierRecord struct {
	Identifier string
	Outcome    LookupOutcome
}

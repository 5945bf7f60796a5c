//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package dify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedReference is returned when a builder requires a resolvable
	// variable reference and the argument looks like a broken one.
	ErrMalformedReference = errors.New("malformed variable reference")
	// ErrTemplateNotFound is returned when a provider tool node's backing
	// template is absent.
	ErrTemplateNotFound = errors.New("tool template not found")
)

// InvalidNodeConfigError reports a missing or invalid required builder argument.
type InvalidNodeConfigError struct {
	// Kind is the node kind being built.
	Kind NodeKind
	// Field is the offending argument.
	Field string
	// Reason says what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *InvalidNodeConfigError) Error() string {
	return fmt.Sprintf("invalid %s node config: field %q %s", e.Kind, e.Field, e.Reason)
}

func invalidConfig(kind NodeKind, field, reason string) error {
	return &InvalidNodeConfigError{Kind: kind, Field: field, Reason: reason}
}

// UnsupportedOptionError reports a value outside a closed enumeration.
type UnsupportedOptionError struct {
	// Option is the argument holding the value.
	Option string
	// Value is the rejected value.
	Value string
	// Allowed is the closed set of accepted values.
	Allowed []string
}

// Error implements the error interface.
func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("unsupported %s %q, allowed: %s",
		e.Option, e.Value, strings.Join(e.Allowed, ", "))
}

// checkOption validates value against a closed set, tolerating the zero value
// (callers substitute their default before calling when the field has one).
func checkOption(option, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &UnsupportedOptionError{Option: option, Value: value, Allowed: allowed}
}

// GraphIntegrityError reports an abstract edge referencing a node with no
// built definition.
type GraphIntegrityError struct {
	// Source is the abstract edge's source node id.
	Source string
	// Target is the abstract edge's target node id.
	Target string
	// Missing is the endpoint with no built node.
	Missing string
}

// Error implements the error interface.
func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("edge %s -> %s references node %s with no built definition",
		e.Source, e.Target, e.Missing)
}

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
	"fmt"
	"regexp"
	"strings"
)

// referencePattern matches the {{#node_id.field#}} reference syntax.
var referencePattern = regexp.MustCompile(`{{#([\w.-]+)#}}`)

// ParseVariable parses a variable reference string into its selector path.
//
// "{{#node_003.text#}}" yields ["node_003", "text"]. Anything that does not
// match the delimiter pattern is returned verbatim as a single-segment path:
// literal values are allowed wherever references are, and callers must
// tolerate them. ParseVariable never fails.
func ParseVariable(selector string) []string {
	match := referencePattern.FindStringSubmatch(selector)
	if match != nil {
		return strings.Split(match[1], ".")
	}
	return []string{selector}
}

// FormatReference renders the reference for one output variable of a node.
func FormatReference(nodeID, variable string) string {
	return fmt.Sprintf("{{#%s.%s#}}", nodeID, variable)
}

// requireReference validates that selector parses as a real reference, for
// builders whose argument must name another node's output rather than a
// literal. A selector that starts like a reference but is not well formed is
// reported as ErrMalformedReference.
func requireReference(selector string) ([]string, error) {
	if referencePattern.MatchString(selector) {
		return ParseVariable(selector), nil
	}
	if strings.Contains(selector, "{{#") || strings.Contains(selector, "#}}") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReference, selector)
	}
	return nil, fmt.Errorf("%w: %q is not a {{#node.field#}} reference",
		ErrMalformedReference, selector)
}

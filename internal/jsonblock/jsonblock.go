//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package jsonblock extracts fenced JSON code blocks from model replies.
//
// Model prompts in this project require answers wrapped in a ```json fence.
// Models occasionally put prose around the fence or answer with bare JSON;
// both are tolerated. Anything else is a parse failure for the caller.
package jsonblock

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoJSONBlock is returned when a reply contains neither a fenced JSON
// block nor bare JSON.
var ErrNoJSONBlock = errors.New("no JSON block found in model reply")

var md = goldmark.New()

// Extract returns the content of the first fenced code block in raw whose
// info string is "json" (or empty). When no fence exists but the trimmed
// reply itself starts like JSON, the trimmed reply is returned verbatim.
func Extract(raw string) (string, error) {
	src := []byte(raw)
	doc := md.Parser().Parse(text.NewReader(src))

	var block string
	var found bool
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		info := ""
		if fenced.Info != nil {
			info = string(fenced.Info.Segment.Value(src))
		}
		if info != "" && !strings.EqualFold(info, "json") {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		block = buf.String()
		found = true
		return ast.WalkStop, nil
	})
	if found {
		return strings.TrimSpace(block), nil
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return trimmed, nil
	}
	return "", ErrNoJSONBlock
}

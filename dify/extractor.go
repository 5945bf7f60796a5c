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
	"strings"
)

type documentExtractorNodeData struct {
	Type             NodeKind       `json:"type"`
	Title            string         `json:"title"`
	Desc             string         `json:"desc"`
	Variables        []NodeVariable `json:"variables"`
	Selected         bool           `json:"selected"`
	VariableSelector []string       `json:"variable_selector"`
	IsArrayFile      bool           `json:"is_array_file"`
}

// DocumentExtractorNodeArgs configures a document text extraction node.
type DocumentExtractorNodeArgs struct {
	NodeID string `json:"node_id" description:"Unique identifier of the node (e.g. \"doc_extractor_1\")."`
	XPos   int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	// A selector naming "files" is treated as a file array and flips the
	// output type to array[string].
	VariableSelector string `json:"variable_selector" description:"File input reference. A single file such as {{#start.file#}} yields a string output, a file list such as {{#sys.files#}} yields array[string]."`
	Title            string `json:"title,omitempty" description:"Display title of the node. Defaults to \"Document Extractor\"."`
	Desc             string `json:"desc,omitempty" description:"Optional node description."`
}

// BuildDocumentExtractorNode creates a node that pulls text out of uploaded
// documents (TXT, Markdown, PDF, HTML, DOCX and similar).
func BuildDocumentExtractorNode(args DocumentExtractorNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindDocumentExtractor, "node_id", "is required")
	}
	if args.VariableSelector == "" {
		return nil, invalidConfig(KindDocumentExtractor, "variable_selector", "is required")
	}
	// The selector must name an upstream file variable; a literal makes no
	// sense here.
	selector, err := requireReference(args.VariableSelector)
	if err != nil {
		return nil, err
	}
	if args.Title == "" {
		args.Title = "Document Extractor"
	}
	isArrayFile := strings.Contains(strings.ToLower(args.VariableSelector), "files")
	data := &documentExtractorNodeData{
		Type:             KindDocumentExtractor,
		Title:            args.Title,
		Desc:             args.Desc,
		Variables:        []NodeVariable{},
		VariableSelector: selector,
		IsArrayFile:      isArrayFile,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 54)
	outputType := "string"
	outputDesc := "Text extracted from the document"
	if isArrayFile {
		outputType = "array[string]"
		outputDesc = "Texts extracted from the documents, one entry per file"
	}
	node.outputs = []OutputVariable{{
		Variable:    "text",
		Label:       "Text output",
		Type:        outputType,
		Description: outputDesc,
	}}
	return singleNodeResult(node,
		fmt.Sprintf("Created document extractor node %q. %s.", args.Title, outputDesc)), nil
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package dify builds concrete Dify workflow node definitions from the
// structured arguments an orchestrating agent supplies. Each builder
// validates its arguments, emits the canvas-ready node JSON and reports
// the output variable references downstream nodes may consume.
package dify

// NodeKind identifies a Dify node data type.
type NodeKind string

// Node kinds understood by the builders.
const (
	KindStart              NodeKind = "start"
	KindAnswer             NodeKind = "answer"
	KindEnd                NodeKind = "end"
	KindLLM                NodeKind = "llm"
	KindCode               NodeKind = "code"
	KindTemplateTransform  NodeKind = "template-transform"
	KindIfElse             NodeKind = "if-else"
	KindHTTPRequest        NodeKind = "http-request"
	KindQuestionClassifier NodeKind = "question-classifier"
	KindVariableAggregator NodeKind = "variable-aggregator"
	KindDocumentExtractor  NodeKind = "document-extractor"
	KindLoop               NodeKind = "loop"
	KindLoopStart          NodeKind = "loop-start"
	KindTool               NodeKind = "tool"
)

// Canvas node wrapper types. Everything except the loop-start child is
// rendered as "custom".
const (
	nodeTypeCustom    = "custom"
	nodeTypeLoopStart = "custom-loop-start"
)

// Position is a canvas coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NodeVariable is a user-facing input variable on a start node.
type NodeVariable struct {
	Variable  string `json:"variable" description:"Variable name."`
	Label     string `json:"label" description:"Display label shown to the user."`
	Type      string `json:"type,omitempty" description:"Input widget type, defaults to text-input."`
	Required  bool   `json:"required" description:"Whether the user must fill the variable."`
	MaxLength int    `json:"max_length,omitempty" description:"Maximum input length, defaults to 48."`
}

// OutputVariable describes one output a node exposes to downstream nodes.
type OutputVariable struct {
	Variable    string `json:"variable"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Node is a canvas-ready Dify node definition. Data holds the kind-specific
// payload; the loop-start child additionally carries parent linkage fields.
type Node struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Data             any      `json:"data"`
	Position         Position `json:"position"`
	TargetPosition   string   `json:"targetPosition"`
	SourcePosition   string   `json:"sourcePosition"`
	PositionAbsolute Position `json:"positionAbsolute"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Selected         bool     `json:"selected"`
	Draggable        bool     `json:"draggable"`
	ParentID         string   `json:"parentId,omitempty"`
	Selectable       *bool    `json:"selectable,omitempty"`
	ZIndex           int      `json:"zIndex,omitempty"`

	outputs []OutputVariable
}

// newNode wraps a data payload in the canvas envelope. The absolute position
// mirrors the relative one; only nested children diverge.
func newNode(id string, data any, pos Position, width, height int) *Node {
	return &Node{
		ID:               id,
		Type:             nodeTypeCustom,
		Data:             data,
		Position:         pos,
		TargetPosition:   "left",
		SourcePosition:   "right",
		PositionAbsolute: pos,
		Width:            width,
		Height:           height,
		Draggable:        true,
	}
}

// OutputVariables reports the outputs this node exposes.
func (n *Node) OutputVariables() []OutputVariable {
	return n.outputs
}

// OutputReferences renders the {{#id.variable#}} reference for each output,
// ready to be pasted into downstream node arguments.
func (n *Node) OutputReferences() []string {
	refs := make([]string, 0, len(n.outputs))
	for _, v := range n.outputs {
		refs = append(refs, FormatReference(n.ID, v.Variable))
	}
	return refs
}

// BuildResult is what every builder returns: the node definitions (loop
// builders emit a parent and its start child), a human-readable observation
// for the agent transcript, and the output references downstream steps
// may consume.
type BuildResult struct {
	Nodes       []*Node  `json:"nodes"`
	Observation string   `json:"observation"`
	Outputs     []string `json:"outputs"`
}

func singleNodeResult(n *Node, observation string) *BuildResult {
	return &BuildResult{
		Nodes:       []*Node{n},
		Observation: observation,
		Outputs:     n.OutputReferences(),
	}
}

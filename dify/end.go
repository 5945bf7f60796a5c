//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package dify

import "fmt"

type endOutput struct {
	Variable      string   `json:"variable"`
	ValueSelector []string `json:"value_selector"`
	ValueType     string   `json:"value_type"`
}

type endNodeData struct {
	Type      NodeKind       `json:"type"`
	Title     string         `json:"title"`
	Desc      string         `json:"desc"`
	Variables []NodeVariable `json:"variables"`
	Selected  bool           `json:"selected"`
	Outputs   []endOutput    `json:"outputs"`
}

// EndOutputArg declares one output variable of an end node.
type EndOutputArg struct {
	Variable      string `json:"variable" description:"Name of the output variable."`
	ValueSelector string `json:"value_selector" description:"Reference to the value, e.g. {{#llm_node_1.text#}}."`
	ValueType     string `json:"value_type,omitempty" description:"Type of the value, defaults to string."`
}

// EndNodeArgs configures a workflow end node.
type EndNodeArgs struct {
	NodeID  string         `json:"node_id" description:"Unique identifier of the node (e.g. \"end_1\")."`
	XPos    int            `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos    int            `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Outputs []EndOutputArg `json:"outputs" description:"Output variable declarations, each mapping a name to an upstream value reference."`
	Title   string         `json:"title,omitempty" description:"Display title of the node. Defaults to \"End\"."`
	Desc    string         `json:"desc,omitempty" description:"Optional node description."`
}

// BuildEndNode creates the node that terminates a workflow and declares
// its output variables.
func BuildEndNode(args EndNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindEnd, "node_id", "is required")
	}
	if args.Title == "" {
		args.Title = "End"
	}
	outputs := make([]endOutput, 0, len(args.Outputs))
	for _, out := range args.Outputs {
		valueType := out.ValueType
		if valueType == "" {
			valueType = "string"
		}
		outputs = append(outputs, endOutput{
			Variable:      out.Variable,
			ValueSelector: ParseVariable(out.ValueSelector),
			ValueType:     valueType,
		})
	}
	data := &endNodeData{
		Type:      KindEnd,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: []NodeVariable{},
		Outputs:   outputs,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 90)
	return &BuildResult{
		Nodes: []*Node{node},
		Observation: fmt.Sprintf("Created end node %q with %d output variables.",
			args.Title, len(outputs)),
		Outputs: []string{},
	}, nil
}

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

type aggregatorVariable struct {
	Variable      string   `json:"variable"`
	ValueSelector []string `json:"value_selector"`
	ValueType     string   `json:"value_type"`
}

type variableAggregatorNodeData struct {
	Type       NodeKind             `json:"type"`
	Title      string               `json:"title"`
	Desc       string               `json:"desc"`
	Selected   bool                 `json:"selected"`
	Variables  []aggregatorVariable `json:"variables"`
	OutputType string               `json:"output_type"`
}

// AggregatorVariableArg binds one branch output into the aggregation.
type AggregatorVariableArg struct {
	Variable  string `json:"variable" description:"Name identifying the aggregated entry."`
	Value     string `json:"value" description:"Value reference, e.g. {{#llm_node_1.text#}}."`
	ValueType string `json:"value_type,omitempty" description:"One of string, number, object, array[string], array[number], array[object]. Defaults to string."`
}

// VariableAggregatorNodeArgs configures a variable aggregator node.
type VariableAggregatorNodeArgs struct {
	NodeID     string                  `json:"node_id" description:"Unique identifier of the node (e.g. \"aggregator_1\")."`
	XPos       int                     `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos       int                     `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Variables  []AggregatorVariableArg `json:"variables,omitempty" description:"Branch outputs to merge into the single aggregated variable."`
	OutputType string                  `json:"output_type,omitempty" description:"Type of the aggregated output, defaults to string."`
	Title      string                  `json:"title,omitempty" description:"Display title of the node. Defaults to \"Variable Aggregator\"."`
	Desc       string                  `json:"desc,omitempty" description:"Optional node description."`
}

// BuildVariableAggregatorNode creates a node that merges the outputs of
// several branches into one variable, so downstream nodes can use a single
// reference regardless of which branch ran.
func BuildVariableAggregatorNode(args VariableAggregatorNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindVariableAggregator, "node_id", "is required")
	}
	if args.Title == "" {
		args.Title = "Variable Aggregator"
	}
	if args.OutputType == "" {
		args.OutputType = "string"
	}
	variables := make([]aggregatorVariable, 0, len(args.Variables))
	for _, v := range args.Variables {
		valueType := v.ValueType
		if valueType == "" {
			valueType = "string"
		}
		variables = append(variables, aggregatorVariable{
			Variable:      v.Variable,
			ValueSelector: ParseVariable(v.Value),
			ValueType:     valueType,
		})
	}
	data := &variableAggregatorNodeData{
		Type:       KindVariableAggregator,
		Title:      args.Title,
		Desc:       args.Desc,
		Variables:  variables,
		OutputType: args.OutputType,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 131)
	node.outputs = []OutputVariable{{
		Variable:    "output",
		Label:       "Aggregated output",
		Type:        args.OutputType,
		Description: "The merged variable value",
	}}
	return singleNodeResult(node,
		fmt.Sprintf("Created variable aggregator node %q merging %d variables into a %s output.",
			args.Title, len(variables), args.OutputType)), nil
}

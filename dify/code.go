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

type codeVariable struct {
	Variable      string   `json:"variable"`
	ValueSelector []string `json:"value_selector"`
	ValueType     string   `json:"value_type"`
}

type codeOutput struct {
	Type     string `json:"type"`
	Children any    `json:"children"`
}

type codeNodeData struct {
	Type         NodeKind              `json:"type"`
	Title        string                `json:"title"`
	Desc         string                `json:"desc"`
	Selected     bool                  `json:"selected"`
	Variables    []codeVariable        `json:"variables"`
	CodeLanguage string                `json:"code_language"`
	Code         string                `json:"code"`
	Outputs      map[string]codeOutput `json:"outputs"`
}

// CodeInputArg binds one input of a code node to an upstream value.
type CodeInputArg struct {
	Variable  string `json:"variable" description:"Argument name visible to the code."`
	Value     string `json:"value" description:"Value reference, e.g. {{#sys.query#}} or {{#previous_node.result#}}."`
	ValueType string `json:"value_type,omitempty" description:"One of string, number, object, array[string], array[number], array[object]. Defaults to string."`
}

// CodeOutputArg declares one output of a code node.
type CodeOutputArg struct {
	Type     string `json:"type" description:"One of string, number, object, array[string], array[number], array[object]."`
	Children any    `json:"children,omitempty" description:"Optional nested object declaration."`
}

// CodeNodeArgs configures a code execution node.
type CodeNodeArgs struct {
	NodeID string `json:"node_id" description:"Unique identifier of the node (e.g. \"code_step_1\")."`
	XPos   int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Code   string `json:"code" description:"Code to execute, a main function in the chosen language. Python example: 'def main(arg1: str) -> dict:\\n    return {\"result\": arg1}'."`
	// Language defaults to python3.
	Language  string                   `json:"code_language,omitempty" description:"Either python3 or javascript. Defaults to python3."`
	Variables []CodeInputArg           `json:"variables,omitempty" description:"Input bindings passed to the main function."`
	Outputs   map[string]CodeOutputArg `json:"outputs,omitempty" description:"Output declarations keyed by variable name. Defaults to {\"result\": {\"type\": \"string\"}}."`
	Title     string                   `json:"title,omitempty" description:"Display title of the node. Defaults to \"Code\"."`
	Desc      string                   `json:"desc,omitempty" description:"Optional node description."`
}

var codeLanguages = []string{"python3", "javascript"}

// BuildCodeNode creates a node that runs custom code as one workflow step.
func BuildCodeNode(args CodeNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindCode, "node_id", "is required")
	}
	if args.Code == "" {
		return nil, invalidConfig(KindCode, "code", "is required")
	}
	if args.Language == "" {
		args.Language = "python3"
	}
	if err := checkOption("code language", args.Language, codeLanguages); err != nil {
		return nil, err
	}
	if args.Title == "" {
		args.Title = "Code"
	}
	variables := make([]codeVariable, 0, len(args.Variables))
	for _, v := range args.Variables {
		valueType := v.ValueType
		if valueType == "" {
			valueType = "string"
		}
		variables = append(variables, codeVariable{
			Variable:      v.Variable,
			ValueSelector: ParseVariable(v.Value),
			ValueType:     valueType,
		})
	}
	outputs := args.Outputs
	if len(outputs) == 0 {
		outputs = map[string]CodeOutputArg{"result": {Type: "string"}}
	}
	dataOutputs := make(map[string]codeOutput, len(outputs))
	outputVars := make([]OutputVariable, 0, len(outputs))
	for name, out := range outputs {
		dataOutputs[name] = codeOutput{Type: out.Type, Children: out.Children}
		outputVars = append(outputVars, OutputVariable{
			Variable:    name,
			Label:       name,
			Type:        out.Type,
			Description: fmt.Sprintf("The %s result of the code", name),
		})
	}
	data := &codeNodeData{
		Type:         KindCode,
		Title:        args.Title,
		Desc:         args.Desc,
		Variables:    variables,
		CodeLanguage: args.Language,
		Code:         args.Code,
		Outputs:      dataOutputs,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 54)
	node.outputs = outputVars
	return singleNodeResult(node,
		fmt.Sprintf("Created %s code node %q. Description: %s",
			args.Language, args.Title, args.Desc)), nil
}

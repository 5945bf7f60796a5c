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

type templateVariable struct {
	Variable      string   `json:"variable"`
	ValueSelector []string `json:"value_selector"`
	ValueType     string   `json:"value_type"`
}

type templateTransformNodeData struct {
	Type      NodeKind           `json:"type"`
	Title     string             `json:"title"`
	Desc      string             `json:"desc"`
	Selected  bool               `json:"selected"`
	Variables []templateVariable `json:"variables"`
	Template  string             `json:"template"`
}

// TemplateVariableArg binds one template variable to an upstream value.
type TemplateVariableArg struct {
	Variable  string `json:"variable" description:"Name used inside the template."`
	Value     string `json:"value" description:"Value reference, e.g. {{#sys.query#}} or {{#previous_node.result#}}."`
	ValueType string `json:"value_type,omitempty" description:"One of string, number, object, array[string], array[number], array[object]. Defaults to string."`
}

// TemplateTransformNodeArgs configures a Jinja2 template transform node.
type TemplateTransformNodeArgs struct {
	NodeID    string                `json:"node_id" description:"Unique identifier of the node (e.g. \"template_step_1\")."`
	XPos      int                   `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos      int                   `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Template  string                `json:"template" description:"Jinja2 template body, supporting variables, loops and conditionals, e.g. 'Query: {{ user_query }}\\nResult: {{ result }}'."`
	Variables []TemplateVariableArg `json:"variables,omitempty" description:"Input bindings available inside the template."`
	Title     string                `json:"title,omitempty" description:"Display title of the node. Defaults to \"Template\"."`
	Desc      string                `json:"desc,omitempty" description:"Optional node description."`
}

// BuildTemplateTransformNode creates a node that reformats data through a
// Jinja2 template.
func BuildTemplateTransformNode(args TemplateTransformNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindTemplateTransform, "node_id", "is required")
	}
	if args.Template == "" {
		return nil, invalidConfig(KindTemplateTransform, "template", "is required")
	}
	if args.Title == "" {
		args.Title = "Template"
	}
	variables := make([]templateVariable, 0, len(args.Variables))
	for _, v := range args.Variables {
		valueType := v.ValueType
		if valueType == "" {
			valueType = "string"
		}
		variables = append(variables, templateVariable{
			Variable:      v.Variable,
			ValueSelector: ParseVariable(v.Value),
			ValueType:     valueType,
		})
	}
	data := &templateTransformNodeData{
		Type:      KindTemplateTransform,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: variables,
		Template:  args.Template,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 54)
	node.outputs = []OutputVariable{{
		Variable:    "output",
		Label:       "Template output",
		Type:        "text",
		Description: "The rendered template",
	}}
	return singleNodeResult(node,
		fmt.Sprintf("Created template transform node %q. Description: %s",
			args.Title, args.Desc)), nil
}

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
	"strconv"
)

type classifierClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type questionClassifierNodeData struct {
	Type                  NodeKind          `json:"type"`
	Title                 string            `json:"title"`
	Desc                  string            `json:"desc"`
	Selected              bool              `json:"selected"`
	Instructions          string            `json:"instructions"`
	QueryVariableSelector []string          `json:"query_variable_selector"`
	Topics                []any             `json:"topics"`
	Model                 llmModel          `json:"model"`
	Classes               []classifierClass `json:"classes"`
	Vision                llmVision         `json:"vision"`
}

// QuestionClassifierNodeArgs configures a question classifier node.
type QuestionClassifierNodeArgs struct {
	NodeID        string   `json:"node_id" description:"Unique identifier of the node (e.g. \"classifier_1\")."`
	XPos          int      `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos          int      `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Query         string   `json:"query" description:"Reference to the question under classification, e.g. {{#sys.query#}}."`
	Classes       []string `json:"classes" description:"Category names routed to, in order. Each category becomes an outgoing branch."`
	Title         string   `json:"title,omitempty" description:"Display title of the node. Defaults to \"Question Classifier\"."`
	ModelProvider string   `json:"model_provider,omitempty" description:"Model provider identifier. Leave empty for the platform default."`
	ModelName     string   `json:"model_name,omitempty" description:"Model name. Leave empty for the platform default."`
	Instructions  string   `json:"instructions,omitempty" description:"Optional extra classification instructions."`
	Desc          string   `json:"desc,omitempty" description:"Optional node description."`
}

// BuildQuestionClassifierNode creates a node that routes the user's
// question to one of several category branches.
func BuildQuestionClassifierNode(args QuestionClassifierNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindQuestionClassifier, "node_id", "is required")
	}
	if args.Query == "" {
		return nil, invalidConfig(KindQuestionClassifier, "query", "is required")
	}
	// The query must name an upstream variable; a literal has nothing to
	// classify against at runtime.
	querySelector, err := requireReference(args.Query)
	if err != nil {
		return nil, err
	}
	if len(args.Classes) == 0 {
		return nil, invalidConfig(KindQuestionClassifier, "classes", "must contain at least one category")
	}
	if args.Title == "" {
		args.Title = "Question Classifier"
	}
	if args.ModelProvider == "" {
		args.ModelProvider = DefaultModelProvider
	}
	if args.ModelName == "" {
		args.ModelName = DefaultModelName
	}
	classes := make([]classifierClass, 0, len(args.Classes))
	for i, name := range args.Classes {
		classes = append(classes, classifierClass{ID: strconv.Itoa(i + 1), Name: name})
	}
	data := &questionClassifierNodeData{
		Type:                  KindQuestionClassifier,
		Title:                 args.Title,
		Desc:                  args.Desc,
		Instructions:          args.Instructions,
		QueryVariableSelector: querySelector,
		Topics:                []any{},
		Model: llmModel{
			Provider:         args.ModelProvider,
			Name:             args.ModelName,
			Mode:             "chat",
			CompletionParams: llmCompletionParams{Temperature: defaultTemperature},
		},
		Classes: classes,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 320, 240)
	node.outputs = []OutputVariable{
		{Variable: "class_name", Label: "Category name", Type: "string", Description: "Name of the matched category"},
		{Variable: "usage", Label: "Usage", Type: "object", Description: "Token usage statistics"},
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created question classifier node %q with %d categories.",
			args.Title, len(classes))), nil
}

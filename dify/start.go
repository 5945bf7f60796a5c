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

type startNodeData struct {
	Type      NodeKind       `json:"type"`
	Title     string         `json:"title"`
	Desc      string         `json:"desc"`
	Variables []NodeVariable `json:"variables"`
	Selected  bool           `json:"selected"`
}

// StartNodeArgs configures a workflow entry node.
type StartNodeArgs struct {
	NodeID string `json:"node_id" description:"Unique identifier of the node (e.g. \"start_1\")."`
	XPos   int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	// The workflow always exposes sys.query as the user's question, the
	// variables here are the extra custom inputs on top of it.
	Variables []NodeVariable `json:"variables,omitempty" description:"Extra workflow input variables. sys.query is always available as the user's question, list only additional custom inputs here."`
	Title     string         `json:"title,omitempty" description:"Display title of the node. Defaults to \"Start\"."`
	Desc      string         `json:"desc,omitempty" description:"Optional node description."`
}

// BuildStartNode creates the workflow entry node.
func BuildStartNode(args StartNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindStart, "node_id", "is required")
	}
	if args.Title == "" {
		args.Title = "Start"
	}
	variables := args.Variables
	for i := range variables {
		if variables[i].Type == "" {
			variables[i].Type = "text-input"
		}
		if variables[i].MaxLength == 0 {
			variables[i].MaxLength = 48
		}
	}
	data := &startNodeData{
		Type:      KindStart,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: variables,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 140)
	return singleNodeResult(node,
		fmt.Sprintf("Created start node %q, the entry point of the workflow.", args.Title)), nil
}

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

type answerNodeData struct {
	Type      NodeKind       `json:"type"`
	Title     string         `json:"title"`
	Desc      string         `json:"desc"`
	Variables []NodeVariable `json:"variables"`
	Answer    string         `json:"answer"`
	Selected  bool           `json:"selected"`
}

// AnswerNodeArgs configures a direct reply node.
type AnswerNodeArgs struct {
	NodeID string `json:"node_id" description:"Unique identifier of the node (e.g. \"final_answer\")."`
	XPos   int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	// Answer may interpolate upstream outputs, e.g.
	// "The search result is: {{#search_node.text#}}".
	AnswerContent string `json:"answer_content" description:"Reply content. May reference upstream outputs such as {{#llm_node.text#}} and mix several references with literal text."`
	Title         string `json:"title,omitempty" description:"Display title of the node. Defaults to \"Answer\"."`
	Desc          string `json:"desc,omitempty" description:"Optional node description."`
}

// BuildAnswerNode creates a node that replies to the user directly,
// used where the workflow has a final output to present.
func BuildAnswerNode(args AnswerNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindAnswer, "node_id", "is required")
	}
	if args.AnswerContent == "" {
		return nil, invalidConfig(KindAnswer, "answer_content", "is required")
	}
	if args.Title == "" {
		args.Title = "Answer"
	}
	data := &answerNodeData{
		Type:      KindAnswer,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: []NodeVariable{},
		Answer:    args.AnswerContent,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 105)
	node.outputs = []OutputVariable{{
		Variable:    "answer",
		Label:       "Reply content",
		Type:        "text",
		Description: "The final reply returned to the user",
	}}
	return singleNodeResult(node,
		fmt.Sprintf("Created answer node %q. It replies with: %s", args.Title, args.AnswerContent)), nil
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package workflow turns an abstract blueprint into concrete Dify node
// definitions through a planner/executor agent: the planner derives an
// ordered task list from the blueprint, the executor agent works through
// it one builder tool call at a time, and the assembler derives the edges.
package workflow

import (
	"trpc.group/trpc-go/trpc-flowgen-go/dify"
	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
)

// State keys used by the agent pipeline.
const (
	StateKeyRequirementDoc     = "requirement_doc"
	StateKeySOP                = "sop"
	StateKeyTodoList           = "todo_list"
	StateKeyNodesCreated       = "nodes_created"
	StateKeyAvailableVariables = "available_variables"
	StateKeyMessages           = "messages"
	StateKeyEdges              = "edges"
)

// Task statuses.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is one planner-issued to-do item, tied to an abstract node.
type Task struct {
	NodeID    string `json:"nodeId"`
	NodeTitle string `json:"nodeTitle"`
	Status    string `json:"status"`
}

// Result is the finished product of an agent run: the concrete node and
// edge definitions plus the variable references accumulated along the way.
type Result struct {
	Nodes     []*dify.Node         `json:"nodes"`
	Edges     []*dify.WorkflowEdge `json:"edges"`
	Variables []string             `json:"variables"`
	Tasks     []Task               `json:"tasks"`
}

// tasksFromState decodes the to-do list from state.
func tasksFromState(state graph.State) ([]Task, error) {
	var tasks []Task
	if err := state.Decode(StateKeyTodoList, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// messagesFromState decodes the conversation from state.
func messagesFromState(state graph.State) ([]model.Message, error) {
	var messages []model.Message
	if err := state.Decode(StateKeyMessages, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// nodesFromState decodes the created nodes from state.
func nodesFromState(state graph.State) ([]*dify.Node, error) {
	v, ok := state[StateKeyNodesCreated]
	if !ok {
		return nil, nil
	}
	if nodes, ok := v.([]*dify.Node); ok {
		return nodes, nil
	}
	var nodes []*dify.Node
	if err := state.Decode(StateKeyNodesCreated, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// variablesFromState decodes the accumulated variable references.
func variablesFromState(state graph.State) []string {
	var variables []string
	if err := state.Decode(StateKeyAvailableVariables, &variables); err != nil {
		return nil
	}
	return variables
}

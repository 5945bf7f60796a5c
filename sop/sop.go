//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package sop models the abstract workflow graph, the intermediate
// representation between a requirement document and concrete node
// definitions. Nodes carry a coarse semantic type plus free-form prose,
// edges carry an optional branch handle.
package sop

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// NodeType is the coarse semantic role of an abstract node.
type NodeType string

// The closed set of abstract node types a blueprint may use.
const (
	NodeTriggerUserInput NodeType = "TRIGGER_USER_INPUT"
	NodeActionWebSearch  NodeType = "ACTION_WEB_SEARCH"
	NodeActionLLM        NodeType = "ACTION_LLM_TRANSFORM"
	NodeConditionBranch  NodeType = "CONDITION_BRANCH"
	NodeOutputFormat     NodeType = "OUTPUT_FORMAT"
)

// NodeTypes lists every abstract node type in a stable order.
var NodeTypes = []NodeType{
	NodeTriggerUserInput,
	NodeActionWebSearch,
	NodeActionLLM,
	NodeConditionBranch,
	NodeOutputFormat,
}

// Valid reports whether t is a member of the closed type set.
func (t NodeType) Valid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Edge is one outgoing connection of an abstract node. SourceHandle is
// empty for plain sequential edges and names the branch (such as a case id
// or "false") on conditional ones.
type Edge struct {
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetNodeID string `json:"targetNodeId"`
}

// Node is one abstract workflow step.
type Node struct {
	Title       string   `json:"nodeTitle"`
	Type        NodeType `json:"nodeType"`
	Description string   `json:"nodeDescription,omitempty"`
	Edges       []Edge   `json:"edges,omitempty"`
}

// Graph is an abstract workflow blueprint. Node iteration follows the
// declaration order of the source JSON, which downstream planning depends
// on.
type Graph struct {
	WorkflowID   string `json:"workflowId"`
	WorkflowName string `json:"workflowName"`
	StartNodeID  string `json:"startNodeId"`

	nodeOrder []string
	nodes     map[string]*Node
}

// ErrEmptyGraph is returned when a blueprint declares no nodes.
var ErrEmptyGraph = errors.New("abstract graph has no nodes")

// graphWire mirrors Graph for encoding; nodes are handled separately to
// keep their order.
type graphWire struct {
	WorkflowID   string          `json:"workflowId"`
	WorkflowName string          `json:"workflowName"`
	StartNodeID  string          `json:"startNodeId"`
	Nodes        json.RawMessage `json:"nodes"`
}

// UnmarshalJSON decodes a graph, preserving the declaration order of the
// nodes object. encoding/json maps are unordered, so the object keys are
// walked with a token decoder instead.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var wire graphWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	g.WorkflowID = wire.WorkflowID
	g.WorkflowName = wire.WorkflowName
	g.StartNodeID = wire.StartNodeID
	g.nodeOrder = nil
	g.nodes = make(map[string]*Node)
	if len(wire.Nodes) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(wire.Nodes))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("nodes: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("nodes: expected string key, got %v", keyTok)
		}
		var node Node
		if err := dec.Decode(&node); err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		g.nodeOrder = append(g.nodeOrder, id)
		g.nodes[id] = &node
	}
	return nil
}

// MarshalJSON encodes the graph with its nodes in declaration order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var nodesBuf bytes.Buffer
	nodesBuf.WriteByte('{')
	for i, id := range g.nodeOrder {
		if i > 0 {
			nodesBuf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(g.nodes[id])
		if err != nil {
			return nil, err
		}
		nodesBuf.Write(key)
		nodesBuf.WriteByte(':')
		nodesBuf.Write(value)
	}
	nodesBuf.WriteByte('}')
	return json.Marshal(graphWire{
		WorkflowID:   g.WorkflowID,
		WorkflowName: g.WorkflowName,
		StartNodeID:  g.StartNodeID,
		Nodes:        nodesBuf.Bytes(),
	})
}

// Parse decodes and validates an abstract graph from JSON.
func Parse(data []byte) (*Graph, error) {
	var graph Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("decode abstract graph: %w", err)
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return &graph, nil
}

// Validate checks structural invariants: a non-empty node set, a known
// type on every node and edges targeting declared nodes.
func (g *Graph) Validate() error {
	if len(g.nodeOrder) == 0 {
		return ErrEmptyGraph
	}
	if g.StartNodeID != "" {
		if _, ok := g.nodes[g.StartNodeID]; !ok {
			return fmt.Errorf("start node %s is not declared", g.StartNodeID)
		}
	}
	for _, id := range g.nodeOrder {
		node := g.nodes[id]
		if !node.Type.Valid() {
			return fmt.Errorf("node %s has unknown type %q", id, node.Type)
		}
		for _, edge := range node.Edges {
			if _, ok := g.nodes[edge.TargetNodeID]; !ok {
				return fmt.Errorf("node %s has an edge to undeclared node %s",
					id, edge.TargetNodeID)
			}
		}
	}
	return nil
}

// NodeIDs returns the node ids in declaration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodeOrder))
	copy(ids, g.nodeOrder)
	return ids
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodeOrder)
}

// AddNode appends a node, keeping declaration order. Adding an existing id
// replaces the node in place.
func (g *Graph) AddNode(id string, node *Node) {
	if g.nodes == nil {
		g.nodes = make(map[string]*Node)
	}
	if _, ok := g.nodes[id]; !ok {
		g.nodeOrder = append(g.nodeOrder, id)
	}
	g.nodes[id] = node
}

// NodeTypeSet reports the distinct node types used by the graph.
func (g *Graph) NodeTypeSet() map[NodeType]bool {
	set := make(map[NodeType]bool)
	for _, id := range g.nodeOrder {
		set[g.nodes[id].Type] = true
	}
	return set
}

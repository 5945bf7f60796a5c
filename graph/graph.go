//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package graph provides a sequential state-machine runtime for LLM
// pipelines: named nodes connected by static or conditional edges, a state
// map flowing through them, and durable interrupt/resume at any node.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
)

// End is the reserved target marking pipeline completion.
const End = "__end__"

// State represents the state that flows through the graph.
// Values must stay JSON-serializable: state is persisted on every checkpoint
// and resumed state has been through a JSON round trip.
type State map[string]any

// Clone creates a shallow copy of the state.
func (s State) Clone() State {
	clone := make(State, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// String returns the string stored under key, or "" when absent or not a
// string.
func (s State) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Decode remarshals the value stored under key into out. It papers over the
// map[string]any forms that JSON round trips leave behind after a resume.
func (s State) Decode(key string, out any) error {
	v, ok := s[key]
	if !ok {
		return fmt.Errorf("state key %q not set", key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal state key %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal state key %q: %w", key, err)
	}
	return nil
}

// NodeFunc is a pipeline stage. It receives the current state and returns a
// partial state update that is merged into it.
type NodeFunc func(ctx context.Context, state State) (State, error)

// ConditionFunc decides the next node after a conditional edge's source.
type ConditionFunc func(ctx context.Context, state State) (string, error)

// Node represents a node in the graph.
type Node struct {
	// ID is the unique identifier of the node.
	ID string
	// Name is the human-readable name of the node.
	Name string
	// Description is the description of the node.
	Description string
	// Function is the function to execute.
	Function NodeFunc
}

// conditionalEdge routes from a source node through a condition function.
type conditionalEdge struct {
	condition ConditionFunc
	pathMap   map[string]string
}

// Graph is a compiled, immutable pipeline definition.
type Graph struct {
	nodes        map[string]*Node
	edges        map[string]string
	conditionals map[string]*conditionalEdge
	entryPoint   string
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// EntryPoint returns the entry node ID.
func (g *Graph) EntryPoint() string {
	return g.entryPoint
}

// next resolves the node following id, consulting conditional edges first.
func (g *Graph) next(ctx context.Context, id string, state State) (string, error) {
	if ce, ok := g.conditionals[id]; ok {
		route, err := ce.condition(ctx, state)
		if err != nil {
			return "", fmt.Errorf("condition after node %s: %w", id, err)
		}
		target, ok := ce.pathMap[route]
		if !ok {
			return "", fmt.Errorf("%w: condition after node %s returned unmapped route %q",
				ErrUnknownRoute, id, route)
		}
		return target, nil
	}
	if target, ok := g.edges[id]; ok {
		return target, nil
	}
	return "", fmt.Errorf("node %s has no outgoing edge", id)
}

// StateGraph provides a fluent interface for building graphs.
//
// Example usage:
//
//	g, err := graph.NewStateGraph().
//	  AddNode("draft", draftNode).
//	  AddNode("review", reviewNode).
//	  AddEdge("draft", "review").
//	  SetEntryPoint("draft").
//	  SetFinishPoint("review").
//	  Compile()
type StateGraph struct {
	graph *Graph
	errs  []error
}

// NewStateGraph creates a new graph builder.
func NewStateGraph() *StateGraph {
	return &StateGraph{
		graph: &Graph{
			nodes:        make(map[string]*Node),
			edges:        make(map[string]string),
			conditionals: make(map[string]*conditionalEdge),
		},
	}
}

// Option is a function that configures a Node.
type Option func(*Node)

// WithName sets the name of the node.
func WithName(name string) Option {
	return func(node *Node) {
		node.Name = name
	}
}

// WithDescription sets the description of the node.
func WithDescription(description string) Option {
	return func(node *Node) {
		node.Description = description
	}
}

// AddNode adds a node with the given ID and function.
func (sg *StateGraph) AddNode(id string, function NodeFunc, opts ...Option) *StateGraph {
	if id == "" || id == End {
		sg.errs = append(sg.errs, fmt.Errorf("invalid node ID %q", id))
		return sg
	}
	if _, exists := sg.graph.nodes[id]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already exists", id))
		return sg
	}
	node := &Node{ID: id, Name: id, Function: function}
	for _, opt := range opts {
		opt(node)
	}
	sg.graph.nodes[id] = node
	return sg
}

// AddEdge adds a static edge between two nodes.
func (sg *StateGraph) AddEdge(from, to string) *StateGraph {
	if _, exists := sg.graph.edges[from]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already has an outgoing edge", from))
		return sg
	}
	sg.graph.edges[from] = to
	return sg
}

// AddConditionalEdges routes from a source node through a condition function.
// The condition's return value selects the target from pathMap; graph.End is
// a valid target.
func (sg *StateGraph) AddConditionalEdges(from string, condition ConditionFunc, pathMap map[string]string) *StateGraph {
	if _, exists := sg.graph.conditionals[from]; exists {
		sg.errs = append(sg.errs, fmt.Errorf("node %s already has conditional edges", from))
		return sg
	}
	sg.graph.conditionals[from] = &conditionalEdge{condition: condition, pathMap: pathMap}
	return sg
}

// SetEntryPoint sets the node execution starts from.
func (sg *StateGraph) SetEntryPoint(id string) *StateGraph {
	sg.graph.entryPoint = id
	return sg
}

// SetFinishPoint marks a node as terminal by wiring it to End.
func (sg *StateGraph) SetFinishPoint(id string) *StateGraph {
	return sg.AddEdge(id, End)
}

// Compile validates the graph and returns it.
func (sg *StateGraph) Compile() (*Graph, error) {
	if len(sg.errs) > 0 {
		return nil, sg.errs[0]
	}
	g := sg.graph
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	if _, ok := g.nodes[g.entryPoint]; !ok {
		return nil, fmt.Errorf("entry point %s is not a node", g.entryPoint)
	}
	check := func(from, to string) error {
		if to == End {
			return nil
		}
		if _, ok := g.nodes[to]; !ok {
			return fmt.Errorf("edge from %s targets unknown node %s", from, to)
		}
		return nil
	}
	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok && from != End {
			return nil, fmt.Errorf("edge source %s is not a node", from)
		}
		if err := check(from, to); err != nil {
			return nil, err
		}
	}
	for from, ce := range g.conditionals {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("conditional edge source %s is not a node", from)
		}
		for _, to := range ce.pathMap {
			if err := check(from, to); err != nil {
				return nil, err
			}
		}
	}
	for id := range g.nodes {
		_, hasEdge := g.edges[id]
		_, hasConditional := g.conditionals[id]
		if !hasEdge && !hasConditional {
			return nil, fmt.Errorf("node %s has no outgoing edge; use SetFinishPoint", id)
		}
	}
	return g, nil
}

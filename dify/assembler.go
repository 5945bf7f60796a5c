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
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/sop"
)

// EdgeData annotates a workflow edge with its endpoint kinds.
type EdgeData struct {
	SourceType NodeKind `json:"sourceType"`
	TargetType NodeKind `json:"targetType"`
	IsInLoop   bool     `json:"isInLoop"`
}

// WorkflowEdge is a canvas-ready Dify edge definition.
type WorkflowEdge struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	SourceHandle string   `json:"sourceHandle"`
	TargetHandle string   `json:"targetHandle"`
	Data         EdgeData `json:"data"`
	ZIndex       int      `json:"zIndex"`
}

// Kind reports the node's data type. It tolerates nodes that went through
// a JSON round trip, whose Data payload degraded to a plain map.
func (n *Node) Kind() NodeKind {
	if m, ok := n.Data.(map[string]any); ok {
		kind, _ := m["type"].(string)
		return NodeKind(kind)
	}
	raw, err := json.Marshal(n.Data)
	if err != nil {
		return ""
	}
	var probe struct {
		Type NodeKind `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Type
}

// Title reports the node's display title, tolerating round-tripped Data.
func (n *Node) Title() string {
	if m, ok := n.Data.(map[string]any); ok {
		title, _ := m["title"].(string)
		return title
	}
	raw, err := json.Marshal(n.Data)
	if err != nil {
		return ""
	}
	var probe struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Title
}

// AssembleOptions configures BuildEdges.
type AssembleOptions struct {
	dropMissingEndpoints bool
}

// AssembleOption is the option for BuildEdges.
type AssembleOption func(*AssembleOptions)

// WithDropMissingEndpoints makes BuildEdges skip edges whose endpoint has
// no built node instead of failing. The resulting workflow may be silently
// disconnected, so this is intended for interactive drafting only.
func WithDropMissingEndpoints() AssembleOption {
	return func(opts *AssembleOptions) {
		opts.dropMissingEndpoints = true
	}
}

// BuildEdges derives the concrete edge list from the abstract graph's
// connections and the built node definitions. An abstract edge whose
// endpoint was never built is a GraphIntegrityError unless
// WithDropMissingEndpoints is set.
//
// The emitted edges are a projection of the abstract ones: every edge
// corresponds to exactly one abstract edge and no edge is invented.
func BuildEdges(graph *sop.Graph, nodes []*Node, opts ...AssembleOption) ([]*WorkflowEdge, error) {
	var options AssembleOptions
	for _, opt := range opts {
		opt(&options)
	}

	built := make(map[string]*Node, len(nodes))
	for _, node := range nodes {
		built[node.ID] = node
	}

	var edges []*WorkflowEdge
	for _, sourceID := range graph.NodeIDs() {
		abstractNode, _ := graph.Node(sourceID)
		sourceNode, sourceOK := built[sourceID]
		for _, abstractEdge := range abstractNode.Edges {
			targetID := abstractEdge.TargetNodeID
			targetNode, targetOK := built[targetID]
			if !sourceOK || !targetOK {
				missing := sourceID
				if sourceOK {
					missing = targetID
				}
				if options.dropMissingEndpoints {
					log.Warnf("dropping edge %s -> %s: node %s has no built definition",
						sourceID, targetID, missing)
					continue
				}
				return nil, &GraphIntegrityError{
					Source:  sourceID,
					Target:  targetID,
					Missing: missing,
				}
			}
			sourceKind := sourceNode.Kind()
			sourceHandle := deriveSourceHandle(sourceKind, abstractEdge.SourceHandle)
			edges = append(edges, &WorkflowEdge{
				ID: fmt.Sprintf("%s-%s-%s-%s",
					sourceID, sourceHandle, targetID, "target"),
				Type:         "custom",
				Source:       sourceID,
				Target:       targetID,
				SourceHandle: sourceHandle,
				TargetHandle: "target",
				Data: EdgeData{
					SourceType: sourceKind,
					TargetType: targetNode.Kind(),
					IsInLoop:   sourceNode.ParentID != "" || targetNode.ParentID != "",
				},
			})
		}
	}
	return edges, nil
}

// deriveSourceHandle picks the edge's source handle. A handle declared on
// the abstract edge wins; otherwise branching kinds get their first branch
// and everything else the plain "source" handle.
func deriveSourceHandle(sourceKind NodeKind, declared string) string {
	if declared != "" {
		return declared
	}
	switch sourceKind {
	case KindIfElse:
		return "true"
	case KindQuestionClassifier:
		return "1"
	default:
		return "source"
	}
}

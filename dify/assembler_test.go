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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flowgen-go/sop"
)

func abstractGraph(t *testing.T) *sop.Graph {
	t.Helper()
	graph, err := sop.Parse([]byte(`{
		"workflowId": "wf",
		"workflowName": "test",
		"startNodeId": "start_1",
		"nodes": {
			"start_1": {
				"nodeTitle": "Start",
				"nodeType": "TRIGGER_USER_INPUT",
				"edges": [{"sourceHandle": "source", "targetNodeId": "if_1"}]
			},
			"if_1": {
				"nodeTitle": "Branch",
				"nodeType": "CONDITION_BRANCH",
				"edges": [
					{"sourceHandle": "is_weather", "targetNodeId": "llm_1"},
					{"sourceHandle": "false", "targetNodeId": "answer_1"}
				]
			},
			"llm_1": {
				"nodeTitle": "Summarize",
				"nodeType": "ACTION_LLM_TRANSFORM",
				"edges": [{"targetNodeId": "answer_1"}]
			},
			"answer_1": {
				"nodeTitle": "Reply",
				"nodeType": "OUTPUT_FORMAT"
			}
		}
	}`))
	require.NoError(t, err)
	return graph
}

func builtNodes(t *testing.T) []*Node {
	t.Helper()
	var nodes []*Node
	start, err := BuildStartNode(StartNodeArgs{NodeID: "start_1"})
	require.NoError(t, err)
	nodes = append(nodes, start.Nodes...)
	branch, err := BuildIfElseNode(IfElseNodeArgs{
		NodeID: "if_1",
		Cases: []CaseArg{{
			ID: "is_weather",
			Conditions: []ConditionArg{
				{Variable: "{{#sys.query#}}", ComparisonOperator: "contains", Value: "weather"},
			},
		}},
	})
	require.NoError(t, err)
	nodes = append(nodes, branch.Nodes...)
	llm, err := BuildLLMNode(LLMNodeArgs{
		NodeID:         "llm_1",
		PromptMessages: []PromptMessage{{Role: "user", Text: "{{#sys.query#}}"}},
	})
	require.NoError(t, err)
	nodes = append(nodes, llm.Nodes...)
	answer, err := BuildAnswerNode(AnswerNodeArgs{NodeID: "answer_1", AnswerContent: "{{#llm_1.text#}}"})
	require.NoError(t, err)
	nodes = append(nodes, answer.Nodes...)
	return nodes
}

func TestBuildEdges(t *testing.T) {
	edges, err := BuildEdges(abstractGraph(t), builtNodes(t))
	require.NoError(t, err)
	require.Len(t, edges, 4)

	byID := make(map[string]*WorkflowEdge, len(edges))
	for _, edge := range edges {
		byID[edge.ID] = edge
		assert.Equal(t, "custom", edge.Type)
		assert.Equal(t, "target", edge.TargetHandle)
		assert.False(t, edge.Data.IsInLoop)
	}

	first := byID["start_1-source-if_1-target"]
	require.NotNil(t, first)
	assert.Equal(t, KindStart, first.Data.SourceType)
	assert.Equal(t, KindIfElse, first.Data.TargetType)

	// A declared branch handle wins over the derived default.
	branch := byID["if_1-is_weather-llm_1-target"]
	require.NotNil(t, branch)
	assert.Equal(t, "is_weather", branch.SourceHandle)
	assert.NotNil(t, byID["if_1-false-answer_1-target"])

	// An edge without a declared handle gets the plain source handle.
	plain := byID["llm_1-source-answer_1-target"]
	require.NotNil(t, plain)
	assert.Equal(t, "source", plain.SourceHandle)
}

func TestBuildEdgesMissingEndpoint(t *testing.T) {
	graph := abstractGraph(t)
	nodes := builtNodes(t)

	// Drop the llm node definition and keep the rest.
	var partial []*Node
	for _, node := range nodes {
		if node.ID != "llm_1" {
			partial = append(partial, node)
		}
	}

	_, err := BuildEdges(graph, partial)
	var integrityErr *GraphIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, "llm_1", integrityErr.Missing)

	// Opting in to dropping keeps the edges whose endpoints exist.
	edges, err := BuildEdges(graph, partial, WithDropMissingEndpoints())
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, edge := range edges {
		assert.NotEqual(t, "llm_1", edge.Source)
		assert.NotEqual(t, "llm_1", edge.Target)
	}
}

func TestDeriveSourceHandle(t *testing.T) {
	assert.Equal(t, "declared", deriveSourceHandle(KindIfElse, "declared"))
	assert.Equal(t, "true", deriveSourceHandle(KindIfElse, ""))
	assert.Equal(t, "1", deriveSourceHandle(KindQuestionClassifier, ""))
	assert.Equal(t, "source", deriveSourceHandle(KindLLM, ""))
}

func TestBuildEdgesLoopMembership(t *testing.T) {
	graph, err := sop.Parse([]byte(`{
		"workflowId": "wf",
		"nodes": {
			"loop_1": {
				"nodeTitle": "Loop",
				"nodeType": "ACTION_LLM_TRANSFORM",
				"edges": [{"targetNodeId": "inner_1"}]
			},
			"inner_1": {
				"nodeTitle": "Inner step",
				"nodeType": "ACTION_LLM_TRANSFORM"
			}
		}
	}`))
	require.NoError(t, err)

	loop, err := BuildLoopNode(LoopNodeArgs{
		NodeID:        "loop_1",
		LoopVariables: []LoopVariableArg{{ID: "v", Label: "counter"}},
	})
	require.NoError(t, err)
	inner, err := BuildLLMNode(LLMNodeArgs{
		NodeID:         "inner_1",
		PromptMessages: []PromptMessage{{Role: "user", Text: "step"}},
	})
	require.NoError(t, err)
	inner.Nodes[0].ParentID = "loop_1"

	edges, err := BuildEdges(graph, append(loop.Nodes, inner.Nodes...))
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.True(t, edges[0].Data.IsInLoop)
}

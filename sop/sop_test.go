//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package sop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGraph = `{
  "workflowId": "wf_001",
  "workflowName": "Research assistant",
  "startNodeId": "node_001",
  "nodes": {
    "node_001": {
      "nodeTitle": "Collect the question",
      "nodeType": "TRIGGER_USER_INPUT",
      "edges": [{"sourceHandle": "source", "targetNodeId": "node_002"}]
    },
    "node_002": {
      "nodeTitle": "Route by intent",
      "nodeType": "CONDITION_BRANCH",
      "nodeDescription": "Search requests go left, everything else right.",
      "edges": [
        {"sourceHandle": "true", "targetNodeId": "node_003_a"},
        {"sourceHandle": "false", "targetNodeId": "node_003_b"}
      ]
    },
    "node_003_a": {
      "nodeTitle": "Search the web",
      "nodeType": "ACTION_WEB_SEARCH",
      "edges": [{"targetNodeId": "node_final_004"}]
    },
    "node_003_b": {
      "nodeTitle": "Answer directly",
      "nodeType": "ACTION_LLM_TRANSFORM",
      "edges": [{"targetNodeId": "node_final_004"}]
    },
    "node_final_004": {
      "nodeTitle": "Format the reply",
      "nodeType": "OUTPUT_FORMAT"
    }
  }
}`

func TestParsePreservesDeclarationOrder(t *testing.T) {
	graph, err := Parse([]byte(sampleGraph))
	require.NoError(t, err)

	assert.Equal(t, "wf_001", graph.WorkflowID)
	assert.Equal(t, "Research assistant", graph.WorkflowName)
	assert.Equal(t, "node_001", graph.StartNodeID)
	assert.Equal(t, 5, graph.Len())
	assert.Equal(t,
		[]string{"node_001", "node_002", "node_003_a", "node_003_b", "node_final_004"},
		graph.NodeIDs())

	branch, ok := graph.Node("node_002")
	require.True(t, ok)
	assert.Equal(t, NodeConditionBranch, branch.Type)
	require.Len(t, branch.Edges, 2)
	assert.Equal(t, "true", branch.Edges[0].SourceHandle)
	assert.Equal(t, "node_003_a", branch.Edges[0].TargetNodeID)
	assert.Equal(t, "false", branch.Edges[1].SourceHandle)
}

func TestMarshalRoundTripKeepsOrder(t *testing.T) {
	graph, err := Parse([]byte(sampleGraph))
	require.NoError(t, err)

	encoded, err := json.Marshal(graph)
	require.NoError(t, err)
	again, err := Parse(encoded)
	require.NoError(t, err)

	assert.Equal(t, graph.NodeIDs(), again.NodeIDs())
	assert.Equal(t, graph.WorkflowID, again.WorkflowID)
	first, _ := again.Node("node_001")
	assert.Equal(t, "Collect the question", first.Title)
}

func TestValidateErrors(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		_, err := Parse([]byte(`{"workflowId": "wf", "nodes": {}}`))
		require.ErrorIs(t, err, ErrEmptyGraph)
	})

	t.Run("unknown node type", func(t *testing.T) {
		_, err := Parse([]byte(`{
			"workflowId": "wf",
			"nodes": {"n1": {"nodeTitle": "x", "nodeType": "ACTION_TELEPORT"}}
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown type")
	})

	t.Run("edge to undeclared node", func(t *testing.T) {
		_, err := Parse([]byte(`{
			"workflowId": "wf",
			"nodes": {"n1": {
				"nodeTitle": "x",
				"nodeType": "TRIGGER_USER_INPUT",
				"edges": [{"targetNodeId": "missing"}]
			}}
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared")
	})

	t.Run("undeclared start node", func(t *testing.T) {
		_, err := Parse([]byte(`{
			"workflowId": "wf",
			"startNodeId": "missing",
			"nodes": {"n1": {"nodeTitle": "x", "nodeType": "TRIGGER_USER_INPUT"}}
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start node")
	})
}

func TestNodeTypeValid(t *testing.T) {
	for _, nodeType := range NodeTypes {
		assert.True(t, nodeType.Valid(), string(nodeType))
	}
	assert.False(t, NodeType("SOMETHING_ELSE").Valid())
}

func TestAddNode(t *testing.T) {
	var graph Graph
	graph.AddNode("a", &Node{Title: "A", Type: NodeTriggerUserInput})
	graph.AddNode("b", &Node{Title: "B", Type: NodeOutputFormat})
	graph.AddNode("a", &Node{Title: "A2", Type: NodeTriggerUserInput})

	assert.Equal(t, []string{"a", "b"}, graph.NodeIDs())
	node, _ := graph.Node("a")
	assert.Equal(t, "A2", node.Title)

	set := graph.NodeTypeSet()
	assert.True(t, set[NodeTriggerUserInput])
	assert.True(t, set[NodeOutputFormat])
	assert.False(t, set[NodeActionWebSearch])
}

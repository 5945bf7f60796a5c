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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flowgen-go/sop"
)

func TestNewCatalogCoversEveryNodeType(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	for _, nodeType := range sop.NodeTypes {
		suggested := catalog.SuggestedTools(nodeType)
		assert.NotEmpty(t, suggested, string(nodeType))
		for _, name := range suggested {
			_, err := catalog.Lookup(name)
			assert.NoError(t, err, name)
		}
	}
}

func TestAggregatorSuggestedDownstreamOfBranches(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	assert.NotContains(t,
		catalog.SuggestedTools(sop.NodeConditionBranch), "create_variable_aggregator_node")
	assert.Contains(t,
		catalog.SuggestedTools(sop.NodeActionLLM), "create_variable_aggregator_node")
	assert.Contains(t,
		catalog.SuggestedTools(sop.NodeOutputFormat), "create_variable_aggregator_node")
}

func TestCatalogLookup(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	builder, err := catalog.Lookup("create_start_node")
	require.NoError(t, err)
	assert.Equal(t, "create_start_node", builder.Declaration().Name)

	_, err = catalog.Lookup("create_teleport_node")
	var unknownErr *UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "create_teleport_node", unknownErr.Name)
}

func TestCatalogCallBuildsNode(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)
	builder, err := catalog.Lookup("create_answer_node")
	require.NoError(t, err)

	output, err := builder.Call(context.Background(),
		[]byte(`{"node_id": "a1", "answer_content": "{{#llm_1.text#}}"}`))
	require.NoError(t, err)
	result, ok := output.(*BuildResult)
	require.True(t, ok)
	assert.Equal(t, "a1", result.Nodes[0].ID)

	// Builder validation errors surface through Call.
	_, err = builder.Call(context.Background(), []byte(`{"node_id": "a1"}`))
	var configErr *InvalidNodeConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestCatalogToolsAndNames(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	names := catalog.Names()
	tools := catalog.Tools()
	assert.Equal(t, len(names), len(tools))
	for _, name := range names {
		require.Contains(t, tools, name)
		decl := tools[name].Declaration()
		assert.Equal(t, name, decl.Name)
		assert.NotEmpty(t, decl.Description, name)
		require.NotNil(t, decl.InputSchema, name)
		assert.Contains(t, decl.InputSchema.Properties, "node_id", name)
	}
}

func TestCatalogSummary(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	summary := catalog.Summary()
	for _, name := range catalog.Names() {
		assert.Contains(t, summary, "- "+name+": ")
	}
}

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
)

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"title": "old",
		"nested": map[string]any{
			"keep":    "kept",
			"replace": "old",
		},
		"scalar": 1,
	}
	deepMerge(dst, map[string]any{
		"title": "new",
		"nested": map[string]any{
			"replace": "new",
			"added":   true,
		},
		"scalar": map[string]any{"now": "a map"},
	})

	assert.Equal(t, "new", dst["title"])
	nested := dst["nested"].(map[string]any)
	assert.Equal(t, "kept", nested["keep"])
	assert.Equal(t, "new", nested["replace"])
	assert.Equal(t, true, nested["added"])
	// A non-map destination value is replaced wholesale.
	assert.Equal(t, map[string]any{"now": "a map"}, dst["scalar"])
}

func TestLoadToolTemplate(t *testing.T) {
	template, err := loadToolTemplate("tavily")
	require.NoError(t, err)
	data := template["data"].(map[string]any)
	assert.Equal(t, "langgenius/tavily/tavily", data["provider_id"])
	assert.Equal(t, "tavily_search", data["tool_name"])

	_, err = loadToolTemplate("nonexistent")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBuildTavilySearchNode(t *testing.T) {
	result, err := BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "tavily_1",
		XPos:   300,
		YPos:   100,
		Query:  "{{#sys.query#}}",
	})
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)

	node := result.Nodes[0]
	assert.Equal(t, "tavily_1", node.ID)
	assert.Equal(t, KindTool, node.Kind())
	assert.Equal(t, "Tavily Search", node.Title())
	assert.Equal(t, 244, node.Width)
	assert.Equal(t, 54, node.Height)

	data := node.Data.(map[string]any)
	params := data["tool_parameters"].(map[string]any)
	query := params["query"].(map[string]any)
	assert.Equal(t, "mixed", query["type"])
	assert.Equal(t, "{{#sys.query#}}", query["value"])
	// Defaults are filled in for the omitted knobs.
	assert.Equal(t, "basic", params["search_depth"].(map[string]any)["value"])
	assert.Equal(t, "general", params["topic"].(map[string]any)["value"])
	assert.Equal(t, 3, params["days"].(map[string]any)["value"])
	assert.Equal(t, 5, params["max_results"].(map[string]any)["value"])

	assert.ElementsMatch(t, []string{
		"{{#tavily_1.text#}}", "{{#tavily_1.files#}}", "{{#tavily_1.json#}}",
	}, result.Outputs)
}

func TestBuildTavilySearchNodeValidation(t *testing.T) {
	_, err := BuildTavilySearchNode(TavilySearchArgs{NodeID: "t"})
	var configErr *InvalidNodeConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "query", configErr.Field)

	_, err = BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "t", Query: "x", SearchDepth: "exhaustive",
	})
	var optionErr *UnsupportedOptionError
	require.ErrorAs(t, err, &optionErr)
	assert.Equal(t, "search depth", optionErr.Option)

	_, err = BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "t", Query: "x", Topic: "sports",
	})
	require.ErrorAs(t, err, &optionErr)

	_, err = BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "t", Query: "x", TimeRange: "decade",
	})
	require.ErrorAs(t, err, &optionErr)
}

func TestBuildSpiderNode(t *testing.T) {
	result, err := BuildSpiderNode(SpiderArgs{
		NodeID: "spider_1",
		URL:    "{{#search_1.url#}}",
	})
	require.NoError(t, err)

	node := result.Nodes[0]
	data := node.Data.(map[string]any)
	params := data["tool_parameters"].(map[string]any)
	assert.Equal(t, "{{#search_1.url#}}", params["url"].(map[string]any)["value"])
	configurations := data["tool_configurations"].(map[string]any)
	assert.Equal(t, defaultUserAgent, configurations["user_agent"].(map[string]any)["value"])

	_, err = BuildSpiderNode(SpiderArgs{NodeID: "spider_1"})
	var configErr *InvalidNodeConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "url", configErr.Field)
}

func TestBuildArxivSearchNode(t *testing.T) {
	result, err := BuildArxivSearchNode(ArxivSearchArgs{
		NodeID: "arxiv_1",
		Query:  "state space models",
	})
	require.NoError(t, err)

	data := result.Nodes[0].Data.(map[string]any)
	params := data["tool_parameters"].(map[string]any)
	assert.Equal(t, "state space models", params["query"].(map[string]any)["value"])
	assert.Equal(t, 5, params["max_results"].(map[string]any)["value"])
	assert.Equal(t, "Arxiv Search", result.Nodes[0].Title())
}

func TestToolTemplateIsolation(t *testing.T) {
	// Building two nodes from the same template must not leak overrides
	// between them.
	first, err := BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "a", Query: "first", MaxResults: 9,
	})
	require.NoError(t, err)
	second, err := BuildTavilySearchNode(TavilySearchArgs{
		NodeID: "b", Query: "second",
	})
	require.NoError(t, err)

	firstParams := first.Nodes[0].Data.(map[string]any)["tool_parameters"].(map[string]any)
	secondParams := second.Nodes[0].Data.(map[string]any)["tool_parameters"].(map[string]any)
	assert.Equal(t, 9, firstParams["max_results"].(map[string]any)["value"])
	assert.Equal(t, 5, secondParams["max_results"].(map[string]any)["value"])
	assert.Equal(t, "first", firstParams["query"].(map[string]any)["value"])
	assert.Equal(t, "second", secondParams["query"].(map[string]any)["value"])
}

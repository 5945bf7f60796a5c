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
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-flowgen-go/sop"
	"trpc.group/trpc-go/trpc-flowgen-go/tool"
	"trpc.group/trpc-go/trpc-flowgen-go/tool/function"
)

// UnknownToolError reports a tool name with no registered builder.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown node builder tool %q", e.Name)
}

// Catalog is the registry of node builder tools an orchestrating agent may
// call. Construction is explicit and fails fast: NewCatalog validates that
// every abstract node type dispatches to at least one registered builder,
// so a half-wired catalog never reaches the agent.
type Catalog struct {
	order  []string
	tools  map[string]tool.CallableTool
	byType map[sop.NodeType][]string
}

// dispatchTable suggests builders per abstract node type. The agent is
// free to pick any registered tool, the table drives the planner hints
// and the startup coverage check.
var dispatchTable = map[sop.NodeType][]string{
	sop.NodeTriggerUserInput: {"create_start_node"},
	sop.NodeActionWebSearch: {
		"create_tavily_search_tool",
		"create_spider_tool",
		"create_arxiv_search_tool",
		"create_http_request_node",
	},
	sop.NodeActionLLM: {
		"create_llm_node",
		"create_code_node",
		"create_template_transform_node",
		"create_document_extractor_node",
		"create_variable_aggregator_node",
		"create_loop_node",
	},
	sop.NodeConditionBranch: {
		"create_if_else_node",
		"create_question_classifier_node",
	},
	// The aggregator merges branch outputs downstream of a branch, so it
	// is suggested for the transform and output stages, not the branch
	// itself.
	sop.NodeOutputFormat: {
		"create_answer_node",
		"create_end_node",
		"create_template_transform_node",
		"create_variable_aggregator_node",
	},
}

// NewCatalog builds the registry with every builder wired in and verifies
// the dispatch table covers the full abstract type set.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{
		tools:  make(map[string]tool.CallableTool),
		byType: dispatchTable,
	}

	register(c, "create_start_node",
		"Create the start node of the workflow, its single entry point. "+
			"The workflow exposes sys.query as the user's question by default.",
		BuildStartNode)
	register(c, "create_answer_node",
		"Create an answer node that replies to the user directly. Use it when the "+
			"workflow has a final output to present. The reply may interpolate upstream "+
			"outputs such as {{#llm_node.text#}}.",
		BuildAnswerNode)
	register(c, "create_end_node",
		"Create an end node terminating the workflow and declaring its output variables.",
		BuildEndNode)
	register(c, "create_llm_node",
		"Create a large language model node for text generation, analysis, "+
			"classification, summarization or one step of a conversation.",
		BuildLLMNode)
	register(c, "create_code_node",
		"Create a code execution node running custom Python or JavaScript logic.",
		BuildCodeNode)
	register(c, "create_http_request_node",
		"Create an HTTP request node for calling external APIs or fetching network resources.",
		BuildHTTPRequestNode)
	register(c, "create_template_transform_node",
		"Create a Jinja2 template node for formatting and transforming data into text.",
		BuildTemplateTransformNode)
	register(c, "create_if_else_node",
		"Create a conditional branch node routing the workflow down different paths. "+
			"Cases are evaluated in order and the first match wins.",
		BuildIfElseNode)
	register(c, "create_question_classifier_node",
		"Create a question classifier node routing the user's question to one of "+
			"several category branches.",
		BuildQuestionClassifierNode)
	register(c, "create_variable_aggregator_node",
		"Create a variable aggregator node merging the outputs of several branches "+
			"into one variable for downstream use.",
		BuildVariableAggregatorNode)
	register(c, "create_document_extractor_node",
		"Create a document extractor node pulling text out of uploaded documents "+
			"(TXT, Markdown, PDF, HTML, DOCX).",
		BuildDocumentExtractorNode)
	register(c, "create_loop_node",
		"Create a loop node repeating a group of steps, with loop variables and "+
			"break conditions. Also emits the mandatory loop start child node.",
		BuildLoopNode)
	register(c, "create_tavily_search_tool",
		"Create a Tavily web search node for live information, news or research material.",
		BuildTavilySearchNode)
	register(c, "create_spider_tool",
		"Create a web scraper node fetching and parsing the content of one page.",
		BuildSpiderNode)
	register(c, "create_arxiv_search_tool",
		"Create an Arxiv search node for academic papers and literature.",
		BuildArxivSearchNode)

	if err := c.validateDispatch(); err != nil {
		return nil, err
	}
	return c, nil
}

// register wires one typed builder into the catalog as a callable tool.
func register[I any](c *Catalog, name, description string, build func(I) (*BuildResult, error)) {
	t := function.New(func(_ context.Context, args I) (*BuildResult, error) {
		return build(args)
	}, function.WithName(name), function.WithDescription(description))
	c.order = append(c.order, name)
	c.tools[name] = t
}

// validateDispatch checks that every abstract node type has at least one
// registered builder and that the table names no unregistered tool.
func (c *Catalog) validateDispatch() error {
	for _, nodeType := range sop.NodeTypes {
		names := c.byType[nodeType]
		if len(names) == 0 {
			return fmt.Errorf("abstract node type %s has no builder tool", nodeType)
		}
		for _, name := range names {
			if _, ok := c.tools[name]; !ok {
				return fmt.Errorf("dispatch for %s names unregistered tool %q", nodeType, name)
			}
		}
	}
	return nil
}

// Lookup resolves a builder tool by name.
func (c *Catalog) Lookup(name string) (tool.CallableTool, error) {
	t, ok := c.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Tools returns the registry keyed by name, in the shape model requests
// expect for tool binding.
func (c *Catalog) Tools() map[string]tool.Tool {
	tools := make(map[string]tool.Tool, len(c.tools))
	for name, t := range c.tools {
		tools[name] = t
	}
	return tools
}

// Names returns the registered tool names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// SuggestedTools returns the builder names recommended for an abstract
// node type.
func (c *Catalog) SuggestedTools(nodeType sop.NodeType) []string {
	return c.byType[nodeType]
}

// Summary renders a one-line-per-tool description block for planner
// prompts, in registration order.
func (c *Catalog) Summary() string {
	var sb strings.Builder
	for _, name := range c.order {
		decl := c.tools[name].Declaration()
		fmt.Fprintf(&sb, "- %s: %s\n", decl.Name, decl.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

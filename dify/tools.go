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
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed templates/*.json
var toolTemplates embed.FS

// loadToolTemplate reads and decodes an embedded provider tool template.
func loadToolTemplate(name string) (map[string]any, error) {
	raw, err := toolTemplates.ReadFile("templates/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	var template map[string]any
	if err := json.Unmarshal(raw, &template); err != nil {
		return nil, fmt.Errorf("decode tool template %s: %w", name, err)
	}
	return template, nil
}

// deepMerge merges src into dst in place. Nested maps are merged key by
// key, any other value in src replaces the one in dst.
func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcOK := value.(map[string]any)
		dstMap, dstOK := dst[key].(map[string]any)
		if srcOK && dstOK {
			deepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}

// toolNodeFromTemplate instantiates a provider tool node from its template,
// patching identity and position and deep-merging the caller's overrides.
func toolNodeFromTemplate(templateName, nodeID, title, desc string, pos Position,
	overrides map[string]any) (*Node, error) {
	template, err := loadToolTemplate(templateName)
	if err != nil {
		return nil, err
	}
	data, ok := template["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tool template %s has no data object", templateName)
	}
	data["title"] = title
	data["desc"] = desc
	if overrides != nil {
		deepMerge(template, overrides)
	}
	node := newNode(nodeID, data, pos, 244, 54)
	// Every provider tool exposes the same three outputs.
	node.outputs = []OutputVariable{
		{Variable: "text", Label: "Text output", Type: "string", Description: "Text returned by the tool"},
		{Variable: "files", Label: "Files", Type: "array[file]", Description: "Files returned by the tool"},
		{Variable: "json", Label: "JSON output", Type: "array[object]", Description: "Structured data returned by the tool"},
	}
	return node, nil
}

// TavilySearchArgs configures a Tavily web search tool node.
type TavilySearchArgs struct {
	NodeID            string `json:"node_id" description:"Unique identifier of the node (e.g. \"tavily_search_1\")."`
	XPos              int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos              int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Query             string `json:"query" description:"Search query. May reference upstream outputs such as {{#sys.query#}}."`
	Title             string `json:"title,omitempty" description:"Display title of the node. Defaults to \"Tavily Search\"."`
	SearchDepth       string `json:"search_depth,omitempty" description:"Either basic or advanced. Defaults to basic."`
	Topic             string `json:"topic,omitempty" description:"One of general, news, finance. Defaults to general."`
	Days              int    `json:"days,omitempty" description:"Restrict results to the last N days. Defaults to 3."`
	TimeRange         string `json:"time_range,omitempty" description:"One of not_specified, day, week, month, year. Defaults to not_specified."`
	MaxResults        int    `json:"max_results,omitempty" description:"Maximum number of results, defaults to 5."`
	IncludeImages     bool   `json:"include_images,omitempty" description:"Include image results."`
	IncludeAnswer     bool   `json:"include_answer,omitempty" description:"Include an AI generated answer."`
	IncludeRawContent bool   `json:"include_raw_content,omitempty" description:"Include raw page content."`
	Desc              string `json:"desc,omitempty" description:"Optional node description."`
}

var (
	tavilySearchDepths = []string{"basic", "advanced"}
	tavilyTopics       = []string{"general", "news", "finance"}
	tavilyTimeRanges   = []string{"not_specified", "day", "week", "month", "year"}
)

// BuildTavilySearchNode creates a Tavily web search tool node, used when a
// workflow step needs live information from the web.
func BuildTavilySearchNode(args TavilySearchArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindTool, "node_id", "is required")
	}
	if args.Query == "" {
		return nil, invalidConfig(KindTool, "query", "is required")
	}
	if args.Title == "" {
		args.Title = "Tavily Search"
	}
	if args.SearchDepth == "" {
		args.SearchDepth = "basic"
	}
	if err := checkOption("search depth", args.SearchDepth, tavilySearchDepths); err != nil {
		return nil, err
	}
	if args.Topic == "" {
		args.Topic = "general"
	}
	if err := checkOption("topic", args.Topic, tavilyTopics); err != nil {
		return nil, err
	}
	if args.TimeRange == "" {
		args.TimeRange = "not_specified"
	}
	if err := checkOption("time range", args.TimeRange, tavilyTimeRanges); err != nil {
		return nil, err
	}
	if args.Days == 0 {
		args.Days = 3
	}
	if args.MaxResults == 0 {
		args.MaxResults = 5
	}
	overrides := map[string]any{
		"data": map[string]any{
			"tool_parameters": map[string]any{
				"query":               map[string]any{"type": "mixed", "value": args.Query},
				"search_depth":        map[string]any{"type": "constant", "value": args.SearchDepth},
				"topic":               map[string]any{"type": "constant", "value": args.Topic},
				"days":                map[string]any{"type": "constant", "value": args.Days},
				"time_range":          map[string]any{"type": "constant", "value": args.TimeRange},
				"max_results":         map[string]any{"type": "constant", "value": args.MaxResults},
				"include_images":      map[string]any{"type": "constant", "value": args.IncludeImages},
				"include_answer":      map[string]any{"type": "constant", "value": args.IncludeAnswer},
				"include_raw_content": map[string]any{"type": "constant", "value": args.IncludeRawContent},
			},
		},
	}
	node, err := toolNodeFromTemplate("tavily", args.NodeID, args.Title, args.Desc,
		Position{X: args.XPos, Y: args.YPos}, overrides)
	if err != nil {
		return nil, err
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created Tavily search node %q with query: %s", args.Title, args.Query)), nil
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/100.0.1000.0 Safari/537.36"

// SpiderArgs configures a web scraper tool node.
type SpiderArgs struct {
	NodeID          string `json:"node_id" description:"Unique identifier of the node (e.g. \"spider_1\")."`
	XPos            int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos            int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	URL             string `json:"url" description:"Page URL to scrape. May reference upstream outputs such as {{#previous_node.url#}}."`
	Title           string `json:"title,omitempty" description:"Display title of the node. Defaults to \"Web Scraper\"."`
	UserAgent       string `json:"user_agent,omitempty" description:"User-Agent header for the request. Defaults to a Chrome UA."`
	GenerateSummary bool   `json:"generate_summary,omitempty" description:"Whether to summarize the page content."`
	Desc            string `json:"desc,omitempty" description:"Optional node description."`
}

// BuildSpiderNode creates a web scraper tool node that fetches and parses
// the content of one page.
func BuildSpiderNode(args SpiderArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindTool, "node_id", "is required")
	}
	if args.URL == "" {
		return nil, invalidConfig(KindTool, "url", "is required")
	}
	if args.Title == "" {
		args.Title = "Web Scraper"
	}
	if args.UserAgent == "" {
		args.UserAgent = defaultUserAgent
	}
	overrides := map[string]any{
		"data": map[string]any{
			"tool_parameters": map[string]any{
				"url": map[string]any{"type": "mixed", "value": args.URL},
			},
			"tool_configurations": map[string]any{
				"user_agent":       map[string]any{"type": "mixed", "value": args.UserAgent},
				"generate_summary": map[string]any{"type": "constant", "value": args.GenerateSummary},
			},
		},
	}
	node, err := toolNodeFromTemplate("spider", args.NodeID, args.Title, args.Desc,
		Position{X: args.XPos, Y: args.YPos}, overrides)
	if err != nil {
		return nil, err
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created web scraper node %q targeting %s", args.Title, args.URL)), nil
}

// ArxivSearchArgs configures an Arxiv paper search tool node.
type ArxivSearchArgs struct {
	NodeID     string `json:"node_id" description:"Unique identifier of the node (e.g. \"arxiv_search_1\")."`
	XPos       int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos       int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Query      string `json:"query" description:"Search query. May reference upstream outputs such as {{#sys.query#}}."`
	Title      string `json:"title,omitempty" description:"Display title of the node. Defaults to \"Arxiv Search\"."`
	MaxResults int    `json:"max_results,omitempty" description:"Maximum number of results, defaults to 5."`
	Desc       string `json:"desc,omitempty" description:"Optional node description."`
}

// BuildArxivSearchNode creates an Arxiv search tool node for academic
// literature lookups.
func BuildArxivSearchNode(args ArxivSearchArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindTool, "node_id", "is required")
	}
	if args.Query == "" {
		return nil, invalidConfig(KindTool, "query", "is required")
	}
	if args.Title == "" {
		args.Title = "Arxiv Search"
	}
	if args.MaxResults == 0 {
		args.MaxResults = 5
	}
	overrides := map[string]any{
		"data": map[string]any{
			"tool_parameters": map[string]any{
				"query":       map[string]any{"type": "mixed", "value": args.Query},
				"max_results": map[string]any{"type": "constant", "value": args.MaxResults},
			},
		},
	}
	node, err := toolNodeFromTemplate("arxiv", args.NodeID, args.Title, args.Desc,
		Position{X: args.XPos, Y: args.YPos}, overrides)
	if err != nil {
		return nil, err
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created Arxiv search node %q with query: %s", args.Title, args.Query)), nil
}

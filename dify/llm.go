//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package dify

import "fmt"

// Defaults used when the agent does not name a model explicitly.
const (
	DefaultModelProvider = "langgenius/siliconflow/siliconflow"
	DefaultModelName     = "deepseek-ai/DeepSeek-V3"

	defaultTemperature = 0.7
)

type llmCompletionParams struct {
	Temperature float64 `json:"temperature"`
}

type llmModel struct {
	Provider         string              `json:"provider"`
	Name             string              `json:"name"`
	Mode             string              `json:"mode"`
	CompletionParams llmCompletionParams `json:"completion_params"`
}

type llmContext struct {
	Enabled          bool  `json:"enabled"`
	VariableSelector []any `json:"variable_selector"`
}

type llmVision struct {
	Enabled bool `json:"enabled"`
}

type llmMemoryWindow struct {
	Enabled bool `json:"enabled"`
	Size    int  `json:"size"`
}

type llmMemory struct {
	Window              llmMemoryWindow   `json:"window"`
	QueryPromptTemplate string            `json:"query_prompt_template"`
	RolePrefix          map[string]string `json:"role_prefix"`
}

// PromptMessage is one entry of an LLM node's prompt template.
type PromptMessage struct {
	Role string `json:"role" description:"One of system, user or assistant."`
	Text string `json:"text" description:"Prompt text for the role. May reference upstream outputs such as {{#sys.query#}} or {{#previous_node.text#}}."`
}

type llmNodeData struct {
	Type           NodeKind        `json:"type"`
	Title          string          `json:"title"`
	Desc           string          `json:"desc"`
	Variables      []NodeVariable  `json:"variables"`
	Selected       bool            `json:"selected"`
	Model          llmModel        `json:"model"`
	PromptTemplate []PromptMessage `json:"prompt_template"`
	Context        llmContext      `json:"context"`
	Vision         llmVision       `json:"vision"`
	Memory         llmMemory       `json:"memory"`
}

// LLMNodeArgs configures a language model inference node.
type LLMNodeArgs struct {
	NodeID         string          `json:"node_id" description:"Unique identifier of the node (e.g. \"llm_step_1\")."`
	XPos           int             `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos           int             `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	PromptMessages []PromptMessage `json:"prompt_messages" description:"Prompt template of the node, e.g. [{\"role\": \"system\", \"text\": \"You are a translator.\"}, {\"role\": \"user\", \"text\": \"Translate {{#sys.query#}}.\"}]."`
	Title          string          `json:"title,omitempty" description:"Display title of the node. Defaults to \"LLM\"."`
	ModelProvider  string          `json:"model_provider,omitempty" description:"Model provider identifier. Leave empty for the platform default."`
	ModelName      string          `json:"model_name,omitempty" description:"Model name. Leave empty for the platform default."`
	Temperature    *float64        `json:"temperature,omitempty" description:"Sampling temperature between 0.0 and 2.0, defaults to 0.7."`
	StopSequences  []string        `json:"stop_sequences,omitempty" description:"Optional stop sequences."`
	Desc           string          `json:"desc,omitempty" description:"Optional node description."`
}

var promptRoles = []string{"system", "user", "assistant"}

// BuildLLMNode creates a large language model node, used for generation,
// analysis, classification or one step of a multi-turn conversation.
func BuildLLMNode(args LLMNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindLLM, "node_id", "is required")
	}
	if len(args.PromptMessages) == 0 {
		return nil, invalidConfig(KindLLM, "prompt_messages", "must contain at least one message")
	}
	for _, msg := range args.PromptMessages {
		if err := checkOption("prompt role", msg.Role, promptRoles); err != nil {
			return nil, err
		}
	}
	if args.Title == "" {
		args.Title = "LLM"
	}
	if args.ModelProvider == "" {
		args.ModelProvider = DefaultModelProvider
	}
	if args.ModelName == "" {
		args.ModelName = DefaultModelName
	}
	temperature := defaultTemperature
	if args.Temperature != nil {
		temperature = *args.Temperature
	}
	data := &llmNodeData{
		Type:      KindLLM,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: []NodeVariable{},
		Model: llmModel{
			Provider:         args.ModelProvider,
			Name:             args.ModelName,
			Mode:             "chat",
			CompletionParams: llmCompletionParams{Temperature: temperature},
		},
		PromptTemplate: args.PromptMessages,
		Context:        llmContext{VariableSelector: []any{}},
		Memory: llmMemory{
			Window:              llmMemoryWindow{Size: 10},
			QueryPromptTemplate: "{{#sys.query#}}\n\n{{#sys.files#}}",
			RolePrefix:          map[string]string{"user": "", "assistant": ""},
		},
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 320, 180)
	node.outputs = []OutputVariable{
		{Variable: "text", Label: "Text output", Type: "text", Description: "Text generated by the model"},
		{Variable: "usage", Label: "Usage", Type: "json", Description: "Token usage statistics"},
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created LLM node %q. Description: %s", args.Title, args.Desc)), nil
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package model defines the boundary with LLM providers.
package model

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-flowgen-go/tool"
)

// Model is the interface implemented by LLM providers.
type Model interface {
	// GenerateContent sends a request to the model and returns its response.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info contains basic information about a model.
type Info struct {
	// Name is the name of the model.
	Name string
}

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the role of the message author.
	Role Role `json:"role"`
	// Content is the message content.
	Content string `json:"content,omitempty"`
	// ToolID is the ID of the tool call a tool response answers.
	ToolID string `json:"tool_id,omitempty"`
	// ToolName is the name of the tool a tool response answers.
	ToolName string `json:"tool_name,omitempty"`
	// ToolCalls is the optional tool calls requested by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a tool response message for the given tool call ID.
func NewToolMessage(toolID, toolName, content string) Message {
	return Message{Role: RoleTool, ToolID: toolID, ToolName: toolName, Content: content}
}

// ToolCall represents a tool call requested by the model.
type ToolCall struct {
	// ID is the provider-assigned identifier of the call.
	ID string `json:"id"`
	// Type is the tool call type, currently always "function".
	Type string `json:"type"`
	// Function holds the function name and JSON arguments.
	Function FunctionCall `json:"function"`
}

// FunctionCall holds the target function and its serialized arguments.
type FunctionCall struct {
	// Name is the name of the function to call.
	Name string `json:"name"`
	// Arguments is the JSON-encoded argument object.
	Arguments []byte `json:"arguments"`
}

// Request is a request to a model.
type Request struct {
	// Messages is the conversation so far.
	Messages []Message `json:"messages"`
	// Tools maps tool names to the tools the model may call.
	Tools map[string]tool.Tool `json:"-"`
	// GenerationConfig holds sampling parameters.
	GenerationConfig GenerationConfig `json:"generation_config"`
}

// GenerationConfig contains the sampling configuration of a request.
type GenerationConfig struct {
	// Temperature controls sampling randomness.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens limits the completion length.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// Stop lists stop sequences.
	Stop []string `json:"stop,omitempty"`
}

// Response is the response from a model.
type Response struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	// Created is the Unix timestamp of the response.
	Created int64 `json:"created"`
	// Choices holds the completion choices; the first one is used.
	Choices []Choice `json:"choices"`
	// Usage reports token usage, when the provider returns it.
	Usage *Usage `json:"usage,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`
	// Message is the message content.
	Message Message `json:"message"`
	// FinishReason is the reason the choice was finished.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens is the total number of tokens in the response.
	TotalTokens int `json:"total_tokens"`
}

// Message returns the first choice's message, or a zero Message when the
// response carries no choices.
func (r *Response) Message() Message {
	if r == nil || len(r.Choices) == 0 {
		return Message{}
	}
	return r.Choices[0].Message
}

// ResponseParseError reports a model reply that violated its expected shape:
// a missing or malformed fenced JSON block, or a constrained-token reply
// outside its closed set. It is terminal for the pipeline that hit it.
type ResponseParseError struct {
	// Stage names the pipeline stage whose contract was violated.
	Stage string
	// Raw is the offending model output.
	Raw string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parse model response at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package tool provides tool interfaces and declarations for LLM tool calling.
package tool

import "context"

// Tool is the interface that all tools must implement.
type Tool interface {
	// Declaration returns the metadata describing the tool to the model.
	Declaration() *Declaration
}

// CallableTool is a tool that can be invoked with JSON-encoded arguments.
type CallableTool interface {
	Tool

	// Call executes the tool with the given JSON arguments.
	Call(ctx context.Context, jsonArgs []byte) (any, error)
}

// Declaration describes a tool: its name, what it does, and the JSON schema
// of its input and output.
type Declaration struct {
	// Name is the tool name presented to the model.
	Name string `json:"name"`
	// Description tells the model when to pick this tool.
	Description string `json:"description"`
	// InputSchema is the JSON schema for the tool arguments.
	InputSchema *Schema `json:"input_schema,omitempty"`
	// OutputSchema is the JSON schema for the tool result.
	OutputSchema *Schema `json:"output_schema,omitempty"`
}

// Schema represents a JSON schema for tool input or output.
type Schema struct {
	// Type is the JSON type: "object", "array", "string", "number",
	// "integer", "boolean" or "null".
	Type string `json:"type,omitempty"`
	// Description describes the value.
	Description string `json:"description,omitempty"`
	// Properties holds the schemas of an object's fields.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Required lists the mandatory fields of an object.
	Required []string `json:"required,omitempty"`
	// Items is the schema of an array's elements.
	Items *Schema `json:"items,omitempty"`
	// Enum restricts a value to a closed set.
	Enum []any `json:"enum,omitempty"`
	// Default is the default value.
	Default any `json:"default,omitempty"`
	// AdditionalProperties is the schema for map values, when set.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package function provides function-based tool implementations.
package function

import (
	"context"
	"encoding/json"
	"reflect"

	ischema "trpc.group/trpc-go/trpc-flowgen-go/internal/schema"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/tool"
)

// FunctionTool wraps a Go function as a CallableTool. Arguments arrive as
// JSON, are unmarshaled into I, and the function result is returned as-is.
type FunctionTool[I, O any] struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
	fn           func(context.Context, I) (O, error)
}

// Option is a function that configures a FunctionTool.
type Option func(*options)

type options struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
}

// WithName sets the name of the function tool.
//
// Note: tool names must comply with LLM API requirements. Use only English
// letters, numbers, underscores, and hyphens for maximum compatibility.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDescription sets the description of the function tool.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// WithInputSchema sets a custom input schema, skipping automatic generation.
func WithInputSchema(schema *tool.Schema) Option {
	return func(o *options) {
		o.inputSchema = schema
	}
}

// WithOutputSchema sets a custom output schema, skipping automatic generation.
func WithOutputSchema(schema *tool.Schema) Option {
	return func(o *options) {
		o.outputSchema = schema
	}
}

// New creates a FunctionTool from the given function.
func New[I, O any](fn func(context.Context, I) (O, error), opts ...Option) *FunctionTool[I, O] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		log.Warnf("FunctionTool: name is empty")
	}
	if o.description == "" {
		log.Warnf("FunctionTool: description is empty")
	}

	var (
		emptyI I
		emptyO O
	)
	inputSchema := o.inputSchema
	if inputSchema == nil {
		inputSchema = ischema.Generate(reflect.TypeOf(emptyI))
	}
	outputSchema := o.outputSchema
	if outputSchema == nil {
		outputSchema = ischema.Generate(reflect.TypeOf(emptyO))
	}

	return &FunctionTool[I, O]{
		name:         o.name,
		description:  o.description,
		fn:           fn,
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
	}
}

// Call executes the function tool with the provided JSON arguments.
func (ft *FunctionTool[I, O]) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	var input I
	if err := json.Unmarshal(jsonArgs, &input); err != nil {
		return nil, err
	}
	return ft.fn(ctx, input)
}

// Declaration returns the tool's declaration information.
func (ft *FunctionTool[I, O]) Declaration() *tool.Declaration {
	return &tool.Declaration{
		Name:         ft.name,
		Description:  ft.description,
		InputSchema:  ft.inputSchema,
		OutputSchema: ft.outputSchema,
	}
}

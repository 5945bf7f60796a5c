//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package blueprint

import (
	"context"
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/internal/jsonblock"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
	"trpc.group/trpc-go/trpc-flowgen-go/sop"
)

// Node ids of the generation pipeline.
const (
	nodeWorkflowGenerator = "workflow_generator"
	nodeMermaidGenerator  = "mermaid"
)

// Pipeline generates an abstract workflow blueprint from a requirement
// document and renders it as mermaid code.
type Pipeline struct {
	model    model.Model
	executor *graph.Executor
}

// Options configures the blueprint pipelines.
type Options struct {
	saver graph.CheckpointSaver
}

// PipelineOption is the option for New and NewChat.
type PipelineOption func(*Options)

// WithCheckpointSaver sets where pipeline threads are persisted.
func WithCheckpointSaver(saver graph.CheckpointSaver) PipelineOption {
	return func(opts *Options) {
		opts.saver = saver
	}
}

// New builds the generation pipeline on top of the given model.
func New(m model.Model, opts ...PipelineOption) (*Pipeline, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	p := &Pipeline{model: m}

	g, err := graph.NewStateGraph().
		AddNode(nodeWorkflowGenerator, p.generateWorkflow,
			graph.WithDescription("Generate the abstract workflow from the requirement document")).
		AddNode(nodeMermaidGenerator, p.generateMermaid,
			graph.WithDescription("Render the workflow as mermaid code")).
		SetEntryPoint(nodeWorkflowGenerator).
		AddEdge(nodeWorkflowGenerator, nodeMermaidGenerator).
		SetFinishPoint(nodeMermaidGenerator).
		Compile()
	if err != nil {
		return nil, fmt.Errorf("compile blueprint pipeline: %w", err)
	}

	var executorOpts []graph.ExecutorOption
	if options.saver != nil {
		executorOpts = append(executorOpts, graph.WithCheckpointSaver(options.saver))
	}
	p.executor = graph.NewExecutor(g, executorOpts...)
	return p, nil
}

// Run generates a blueprint for the given requirement document JSON.
func (p *Pipeline) Run(ctx context.Context, threadID, finalDocument string) (graph.State, error) {
	return p.executor.Invoke(ctx, threadID, graph.State{
		StateKeyFinalDocument: finalDocument,
	})
}

func (p *Pipeline) generateWorkflow(ctx context.Context, state graph.State) (graph.State, error) {
	document := state.String(StateKeyFinalDocument)
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(workflowPrompt),
			model.NewUserMessage("ORIGINAL_DOCUMENT:\n" + document),
		},
	})
	if err != nil {
		return nil, err
	}
	workflow, err := parseWorkflowReply(nodeWorkflowGenerator, response.Message().Content)
	if err != nil {
		return nil, err
	}
	log.Debugf("blueprint: generated workflow %s with %d nodes",
		workflow.WorkflowID, workflow.Len())
	return graph.State{StateKeyWorkflow: workflow}, nil
}

func (p *Pipeline) generateMermaid(ctx context.Context, state graph.State) (graph.State, error) {
	workflowJSON, err := workflowFromState(state, StateKeyWorkflow)
	if err != nil {
		return nil, err
	}
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(mermaidPrompt),
			model.NewUserMessage("WORKFLOW:\n" + workflowJSON),
		},
	})
	if err != nil {
		return nil, err
	}
	// Mermaid output is passed through untouched; rendering it is the
	// caller's concern.
	return graph.State{StateKeyMermaidCode: response.Message().Content}, nil
}

// parseWorkflowReply extracts and validates the abstract graph from a
// model reply.
func parseWorkflowReply(stage, raw string) (*sop.Graph, error) {
	payload, err := jsonblock.Extract(raw)
	if err != nil {
		return nil, &model.ResponseParseError{Stage: stage, Raw: raw, Err: err}
	}
	workflow, err := sop.Parse([]byte(payload))
	if err != nil {
		return nil, &model.ResponseParseError{Stage: stage, Raw: raw, Err: err}
	}
	return workflow, nil
}

// workflowFromState re-encodes the workflow stored in state as JSON,
// regardless of whether it is a raw JSON string, a *sop.Graph or a map
// degraded by a checkpoint round trip.
func workflowFromState(state graph.State, key string) (string, error) {
	v, ok := state[key]
	if !ok {
		return "", fmt.Errorf("state key %q not set", key)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal state key %q: %w", key, err)
	}
	return string(raw), nil
}

// Workflow extracts the abstract graph from a completed run's state.
func Workflow(state graph.State) (*sop.Graph, error) {
	raw, err := workflowFromState(state, StateKeyWorkflow)
	if err != nil {
		return nil, err
	}
	return sop.Parse([]byte(raw))
}

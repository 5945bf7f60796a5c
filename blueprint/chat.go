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
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
)

// Node ids of the chat refinement pipeline.
const (
	nodeChat           = "chat"
	nodeDecide         = "decide"
	nodeUpdateWorkflow = "update_workflow"
	nodeChatMermaid    = "mermaid"
)

// ChatPipeline refines an existing blueprint through conversation: it
// replies to the user, decides whether the message asks for a concrete
// change, and if so rewrites the workflow and its mermaid code.
type ChatPipeline struct {
	model    model.Model
	executor *graph.Executor
}

// NewChat builds the chat refinement pipeline on top of the given model.
func NewChat(m model.Model, opts ...PipelineOption) (*ChatPipeline, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	p := &ChatPipeline{model: m}

	g, err := graph.NewStateGraph().
		AddNode(nodeChat, p.chat,
			graph.WithDescription("Reply to the user's message")).
		AddNode(nodeDecide, p.decide,
			graph.WithDescription("Decide whether the message asks for a workflow change")).
		AddNode(nodeUpdateWorkflow, p.updateWorkflow,
			graph.WithDescription("Apply the requested change to the workflow")).
		AddNode(nodeChatMermaid, p.generateMermaid,
			graph.WithDescription("Re-render the refined workflow as mermaid code")).
		SetEntryPoint(nodeChat).
		AddEdge(nodeChat, nodeDecide).
		AddConditionalEdges(nodeDecide, p.routeDecision, map[string]string{
			DecisionUpdate: nodeUpdateWorkflow,
			DecisionEnd:    graph.End,
		}).
		AddEdge(nodeUpdateWorkflow, nodeChatMermaid).
		SetFinishPoint(nodeChatMermaid).
		Compile()
	if err != nil {
		return nil, fmt.Errorf("compile chat pipeline: %w", err)
	}

	var executorOpts []graph.ExecutorOption
	if options.saver != nil {
		executorOpts = append(executorOpts, graph.WithCheckpointSaver(options.saver))
	}
	p.executor = graph.NewExecutor(g, executorOpts...)
	return p, nil
}

// Run processes one user message against the current workflow JSON. The
// returned state always holds a reply; it holds a refined workflow and
// fresh mermaid code only when the message asked for a concrete change.
func (p *ChatPipeline) Run(ctx context.Context, threadID, workflowJSON, userMessage string) (graph.State, error) {
	return p.executor.Invoke(ctx, threadID, graph.State{
		StateKeyWorkflow:    workflowJSON,
		StateKeyUserMessage: userMessage,
	})
}

func (p *ChatPipeline) chat(ctx context.Context, state graph.State) (graph.State, error) {
	workflowJSON, err := workflowFromState(state, StateKeyWorkflow)
	if err != nil {
		return nil, err
	}
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(chatPrompt),
			model.NewUserMessage(fmt.Sprintf("WORKFLOW:\n%s\nMESSAGES:\n%s",
				workflowJSON, state.String(StateKeyUserMessage))),
		},
	})
	if err != nil {
		return nil, err
	}
	return graph.State{StateKeyReply: response.Message().Content}, nil
}

// decide asks the model for the update/end token. Any reply outside the
// closed token set is a contract violation and fails the run rather than
// being coerced.
func (p *ChatPipeline) decide(ctx context.Context, state graph.State) (graph.State, error) {
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(decisionPrompt),
			model.NewUserMessage("MESSAGES:\n" + state.String(StateKeyUserMessage)),
		},
	})
	if err != nil {
		return nil, err
	}
	raw := response.Message().Content
	decision := strings.TrimSpace(raw)
	if decision != DecisionUpdate && decision != DecisionEnd {
		return nil, &model.ResponseParseError{
			Stage: nodeDecide,
			Raw:   raw,
			Err:   fmt.Errorf("decision %q is not update or end", decision),
		}
	}
	log.Debugf("blueprint chat: decision %s", decision)
	return graph.State{StateKeyDecision: decision}, nil
}

func (p *ChatPipeline) routeDecision(_ context.Context, state graph.State) (string, error) {
	return state.String(StateKeyDecision), nil
}

func (p *ChatPipeline) updateWorkflow(ctx context.Context, state graph.State) (graph.State, error) {
	workflowJSON, err := workflowFromState(state, StateKeyWorkflow)
	if err != nil {
		return nil, err
	}
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(refinePrompt),
			model.NewUserMessage(fmt.Sprintf("OLD_WORKFLOW:\n%s\nREFINE_REQUIREMENT:\n%s",
				workflowJSON, state.String(StateKeyUserMessage))),
		},
	})
	if err != nil {
		return nil, err
	}
	refined, err := parseWorkflowReply(nodeUpdateWorkflow, response.Message().Content)
	if err != nil {
		return nil, err
	}
	log.Debugf("blueprint chat: refined workflow has %d nodes", refined.Len())
	return graph.State{StateKeyRefinedWorkflow: refined}, nil
}

func (p *ChatPipeline) generateMermaid(ctx context.Context, state graph.State) (graph.State, error) {
	workflowJSON, err := workflowFromState(state, StateKeyRefinedWorkflow)
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
	return graph.State{StateKeyMermaidCode: response.Message().Content}, nil
}

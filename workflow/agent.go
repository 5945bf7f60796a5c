//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-flowgen-go/dify"
	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/internal/jsonblock"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
	"trpc.group/trpc-go/trpc-flowgen-go/sop"
)

// Node ids of the agent pipeline.
const (
	nodePlanner      = "planner"
	nodeAgent        = "agent"
	nodeToolExecutor = "tool_executor"
	nodeAssembler    = "assembler"
)

// Routes of the agent's conditional edge.
const (
	routeCallTool = "call_tool"
	routeContinue = "continue"
	routeEnd      = "end"
)

// Agent is the planner/executor agent that turns an abstract blueprint
// into concrete node definitions, one builder tool call per turn.
type Agent struct {
	model        model.Model
	catalog      *dify.Catalog
	executor     *graph.Executor
	assembleOpts []dify.AssembleOption
}

// AgentOptions configures an Agent.
type AgentOptions struct {
	saver        graph.CheckpointSaver
	assembleOpts []dify.AssembleOption
}

// AgentOption is the option for NewAgent.
type AgentOption func(*AgentOptions)

// WithCheckpointSaver sets where run state is persisted.
func WithCheckpointSaver(saver graph.CheckpointSaver) AgentOption {
	return func(opts *AgentOptions) {
		opts.saver = saver
	}
}

// WithAssembleOptions forwards options to the final edge assembly.
func WithAssembleOptions(assembleOpts ...dify.AssembleOption) AgentOption {
	return func(opts *AgentOptions) {
		opts.assembleOpts = assembleOpts
	}
}

// NewAgent builds the agent on top of the given model. The builder catalog
// is constructed here and validated against the abstract type set, so a
// broken dispatch table fails construction rather than a run.
func NewAgent(m model.Model, opts ...AgentOption) (*Agent, error) {
	var options AgentOptions
	for _, opt := range opts {
		opt(&options)
	}
	catalog, err := dify.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("build node catalog: %w", err)
	}
	a := &Agent{
		model:        m,
		catalog:      catalog,
		assembleOpts: options.assembleOpts,
	}

	g, err := graph.NewStateGraph().
		AddNode(nodePlanner, a.plan,
			graph.WithDescription("Derive the ordered task list from the blueprint")).
		AddNode(nodeAgent, a.step,
			graph.WithDescription("Pick the next builder tool call")).
		AddNode(nodeToolExecutor, a.executeTool,
			graph.WithDescription("Run one builder tool and record its output")).
		AddNode(nodeAssembler, a.assemble,
			graph.WithDescription("Derive the concrete edges from the blueprint")).
		SetEntryPoint(nodePlanner).
		AddEdge(nodePlanner, nodeAgent).
		AddConditionalEdges(nodeAgent, a.shouldContinue, map[string]string{
			routeCallTool: nodeToolExecutor,
			routeContinue: nodeAgent,
			routeEnd:      nodeAssembler,
		}).
		AddEdge(nodeToolExecutor, nodeAgent).
		SetFinishPoint(nodeAssembler).
		Compile()
	if err != nil {
		return nil, fmt.Errorf("compile workflow agent: %w", err)
	}

	var executorOpts []graph.ExecutorOption
	if options.saver != nil {
		executorOpts = append(executorOpts, graph.WithCheckpointSaver(options.saver))
	}
	a.executor = graph.NewExecutor(g, executorOpts...)
	return a, nil
}

// Catalog exposes the agent's builder registry.
func (a *Agent) Catalog() *dify.Catalog {
	return a.catalog
}

// Run executes the full plan/build/assemble cycle for one blueprint and
// returns the concrete workflow definition.
func (a *Agent) Run(ctx context.Context, threadID, requirementDoc string, blueprint *sop.Graph) (*Result, error) {
	state, err := a.executor.Invoke(ctx, threadID, graph.State{
		StateKeyRequirementDoc:     requirementDoc,
		StateKeySOP:                blueprint,
		StateKeyAvailableVariables: []string{},
		StateKeyMessages:           []model.Message{},
	})
	if err != nil {
		return nil, err
	}
	nodes, err := nodesFromState(state)
	if err != nil {
		return nil, err
	}
	tasks, err := tasksFromState(state)
	if err != nil {
		return nil, err
	}
	var edges []*dify.WorkflowEdge
	if err := state.Decode(StateKeyEdges, &edges); err != nil {
		return nil, err
	}
	return &Result{
		Nodes:     nodes,
		Edges:     edges,
		Variables: variablesFromState(state),
		Tasks:     tasks,
	}, nil
}

// plan asks the model for the ordered to-do list and seeds the executor
// conversation with it.
func (a *Agent) plan(ctx context.Context, state graph.State) (graph.State, error) {
	sopJSON, err := sopJSONFromState(state)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(plannerPromptFormat,
		a.catalog.Summary(), sopJSON, state.String(StateKeyRequirementDoc))
	response, err := a.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{model.NewUserMessage(prompt)},
	})
	if err != nil {
		return nil, err
	}
	raw := response.Message().Content
	payload, err := jsonblock.Extract(raw)
	if err != nil {
		return nil, &model.ResponseParseError{Stage: nodePlanner, Raw: raw, Err: err}
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(payload), &tasks); err != nil {
		return nil, &model.ResponseParseError{Stage: nodePlanner, Raw: raw, Err: err}
	}
	log.Infof("workflow planner: %d tasks", len(tasks))

	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, err
	}
	handoff := model.NewUserMessage(fmt.Sprintf(plannerHandoffFormat, sopJSON, tasksJSON))
	return graph.State{
		StateKeyTodoList: tasks,
		StateKeyMessages: []model.Message{handoff},
	}, nil
}

// step runs one executor agent turn with the builder tools bound.
func (a *Agent) step(ctx context.Context, state graph.State) (graph.State, error) {
	messages, err := messagesFromState(state)
	if err != nil {
		return nil, err
	}
	variables := variablesFromState(state)
	variablesJSON, err := json.Marshal(variables)
	if err != nil {
		return nil, err
	}
	system := model.NewSystemMessage(fmt.Sprintf(executorSystemPromptFormat, variablesJSON))
	request := &model.Request{
		Messages: append([]model.Message{system}, messages...),
		Tools:    a.catalog.Tools(),
	}
	response, err := a.model.GenerateContent(ctx, request)
	if err != nil {
		return nil, err
	}
	return graph.State{
		StateKeyMessages: append(messages, response.Message()),
	}, nil
}

// shouldContinue routes after an agent turn: a pending tool call runs the
// tool, a fully completed task list assembles, anything else loops.
func (a *Agent) shouldContinue(_ context.Context, state graph.State) (string, error) {
	messages, err := messagesFromState(state)
	if err != nil {
		return "", err
	}
	if len(messages) > 0 && len(messages[len(messages)-1].ToolCalls) > 0 {
		return routeCallTool, nil
	}
	tasks, err := tasksFromState(state)
	if err != nil {
		return "", err
	}
	for _, task := range tasks {
		if task.Status != TaskStatusCompleted {
			return routeContinue, nil
		}
	}
	return routeEnd, nil
}

// executeTool runs the first tool call of the last agent message. Builder
// validation failures are fed back to the agent as the observation so it
// can correct its arguments; an unknown tool name is terminal.
func (a *Agent) executeTool(ctx context.Context, state graph.State) (graph.State, error) {
	messages, err := messagesFromState(state)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 || len(messages[len(messages)-1].ToolCalls) == 0 {
		return graph.State{}, nil
	}
	toolCall := messages[len(messages)-1].ToolCalls[0]
	toolName := toolCall.Function.Name

	builder, err := a.catalog.Lookup(toolName)
	if err != nil {
		return nil, err
	}
	output, err := builder.Call(ctx, toolCall.Function.Arguments)
	if err != nil {
		log.Warnf("workflow tool %s rejected arguments: %v", toolName, err)
		feedback := model.NewToolMessage(toolCall.ID, toolName, "Error: "+err.Error())
		return graph.State{StateKeyMessages: append(messages, feedback)}, nil
	}
	result, err := buildResultFromOutput(output)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", toolName, err)
	}

	nodes, err := nodesFromState(state)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, result.Nodes...)
	variables := append(variablesFromState(state), result.Outputs...)
	tasks, err := tasksFromState(state)
	if err != nil {
		return nil, err
	}
	markTaskCompleted(tasks, result)

	observation := model.NewToolMessage(toolCall.ID, toolName, result.Observation)
	return graph.State{
		StateKeyMessages:           append(messages, observation),
		StateKeyNodesCreated:       nodes,
		StateKeyAvailableVariables: variables,
		StateKeyTodoList:           tasks,
	}, nil
}

// assemble derives the concrete edge list once every task is done.
func (a *Agent) assemble(_ context.Context, state graph.State) (graph.State, error) {
	sopJSON, err := sopJSONFromState(state)
	if err != nil {
		return nil, err
	}
	blueprint, err := sop.Parse([]byte(sopJSON))
	if err != nil {
		return nil, err
	}
	nodes, err := nodesFromState(state)
	if err != nil {
		return nil, err
	}
	edges, err := dify.BuildEdges(blueprint, nodes, a.assembleOpts...)
	if err != nil {
		return nil, err
	}
	log.Infof("workflow assembler: %d nodes, %d edges", len(nodes), len(edges))
	return graph.State{StateKeyEdges: edges}, nil
}

// markTaskCompleted flips the first matching pending task. Matching is by
// the built node's id against the task's abstract node id, falling back
// to the display title for agents that renamed the node.
func markTaskCompleted(tasks []Task, result *dify.BuildResult) {
	if len(result.Nodes) == 0 {
		return
	}
	primary := result.Nodes[0]
	for i := range tasks {
		if tasks[i].Status == TaskStatusPending && tasks[i].NodeID == primary.ID {
			tasks[i].Status = TaskStatusCompleted
			return
		}
	}
	title := primary.Title()
	for i := range tasks {
		if tasks[i].Status == TaskStatusPending && tasks[i].NodeTitle == title {
			tasks[i].Status = TaskStatusCompleted
			return
		}
	}
	log.Warnf("workflow: built node %s matches no pending task", primary.ID)
}

// buildResultFromOutput normalizes a tool return value to *dify.BuildResult.
func buildResultFromOutput(output any) (*dify.BuildResult, error) {
	if result, ok := output.(*dify.BuildResult); ok {
		return result, nil
	}
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("unexpected tool output: %w", err)
	}
	var result dify.BuildResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unexpected tool output: %w", err)
	}
	return &result, nil
}

// sopJSONFromState re-encodes the blueprint stored in state, regardless of
// whether it is still a *sop.Graph or a decoded map.
func sopJSONFromState(state graph.State) (string, error) {
	v, ok := state[StateKeySOP]
	if !ok {
		return "", fmt.Errorf("state key %q not set", StateKeySOP)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal blueprint: %w", err)
	}
	return string(raw), nil
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"trpc.group/trpc-go/trpc-flowgen-go/log"
)

var tracer = otel.Tracer("trpc.group/trpc-go/trpc-flowgen-go/graph")

// maxSteps bounds one Invoke/Resume run; pipelines here are small, so a
// longer walk indicates a routing cycle that would never terminate.
const maxSteps = 1000

// Executor runs a compiled graph, one node at a time, persisting a
// checkpoint whenever the run is interrupted or completes.
type Executor struct {
	graph *Graph
	saver CheckpointSaver
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithCheckpointSaver sets the checkpoint storage backend.
// Without a saver, interrupts are returned but cannot be resumed.
func WithCheckpointSaver(saver CheckpointSaver) ExecutorOption {
	return func(e *Executor) {
		e.saver = saver
	}
}

// NewExecutor creates an executor for the given compiled graph.
func NewExecutor(graph *Graph, opts ...ExecutorOption) *Executor {
	e := &Executor{graph: graph}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Invoke starts a fresh run of the graph for the given thread.
// The returned error is a *GraphInterrupt when the run parked at an
// interrupt point; the thread can then be continued with Resume.
func (e *Executor) Invoke(ctx context.Context, threadID string, initial State) (State, error) {
	if threadID == "" {
		return nil, ErrThreadIDEmpty
	}
	state := initial.Clone()
	if state == nil {
		state = make(State)
	}
	return e.run(ctx, threadID, e.graph.entryPoint, state)
}

// Resume continues an interrupted thread. Values in resume are injected
// keyed by interrupt key, so the parked node finds them and passes through.
// Resuming with an empty map repeats the suspension.
func (e *Executor) Resume(ctx context.Context, threadID string, resume map[string]any) (State, error) {
	if threadID == "" {
		return nil, ErrThreadIDEmpty
	}
	if e.saver == nil {
		return nil, fmt.Errorf("resume thread %s: no checkpoint saver configured", threadID)
	}
	checkpoint, err := e.saver.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if checkpoint.Status == CheckpointStatusCompleted {
		return checkpoint.State, ErrThreadCompleted
	}
	state := checkpoint.State.Clone()
	for key, value := range resume {
		injectResume(state, key, value)
	}
	return e.run(ctx, threadID, checkpoint.NodeID, state)
}

// run walks the graph from startNode until End, an error, or an interrupt.
func (e *Executor) run(ctx context.Context, threadID, startNode string, state State) (State, error) {
	current := startNode
	for steps := 0; current != End; steps++ {
		if steps >= maxSteps {
			return nil, fmt.Errorf("thread %s exceeded %d steps at node %s", threadID, maxSteps, current)
		}
		node, ok := e.graph.Node(current)
		if !ok {
			return nil, fmt.Errorf("thread %s references unknown node %s", threadID, current)
		}

		update, err := e.executeNode(ctx, threadID, node, state)
		if err != nil {
			if interrupt, ok := GetInterrupt(err); ok {
				interrupt.NodeID = node.ID
				if saveErr := e.saveCheckpoint(ctx, threadID, node.ID,
					CheckpointStatusInterrupted, interrupt.Key, state); saveErr != nil {
					return nil, fmt.Errorf("persist interrupt for thread %s: %w", threadID, saveErr)
				}
				return state, interrupt
			}
			return nil, fmt.Errorf("node %s: %w", node.ID, err)
		}
		for k, v := range update {
			state[k] = v
		}

		next, err := e.graph.next(ctx, current, state)
		if err != nil {
			return nil, err
		}
		current = next
	}

	if err := e.saveCheckpoint(ctx, threadID, End, CheckpointStatusCompleted, "", state); err != nil {
		return nil, fmt.Errorf("persist completion for thread %s: %w", threadID, err)
	}
	return state, nil
}

func (e *Executor) executeNode(ctx context.Context, threadID string, node *Node, state State) (State, error) {
	ctx, span := tracer.Start(ctx, "graph.node."+node.ID)
	defer span.End()
	span.SetAttributes(
		attribute.String("graph.node.id", node.ID),
		attribute.String("graph.thread.id", threadID),
	)

	log.Debugf("thread %s: executing node %s", threadID, node.ID)
	update, err := node.Function(ctx, state)
	if err != nil && !IsInterrupt(err) {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	return update, err
}

func (e *Executor) saveCheckpoint(ctx context.Context, threadID, nodeID, status, interruptKey string, state State) error {
	if e.saver == nil {
		return nil
	}
	// Round trip through JSON so resumed runs see exactly what a durable
	// backend would have handed back.
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("state not serializable: %w", err)
	}
	var durable State
	if err := json.Unmarshal(raw, &durable); err != nil {
		return fmt.Errorf("state not round-trippable: %w", err)
	}
	checkpoint := NewCheckpoint(threadID, nodeID, status, durable)
	checkpoint.InterruptKey = interruptKey
	return e.saver.Put(ctx, checkpoint)
}

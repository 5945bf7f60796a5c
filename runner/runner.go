//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package runner wires the pipelines into one explicitly constructed
// registry. Construction validates every pipeline up front and Close
// releases the shared resources; nothing is initialized lazily behind a
// global.
package runner

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-flowgen-go/blueprint"
	"trpc.group/trpc-go/trpc-flowgen-go/config"
	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/graph/checkpoint/inmemory"
	checkpointredis "trpc.group/trpc-go/trpc-flowgen-go/graph/checkpoint/redis"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
	"trpc.group/trpc-go/trpc-flowgen-go/requirement"
	"trpc.group/trpc-go/trpc-flowgen-go/sop"
	"trpc.group/trpc-go/trpc-flowgen-go/workflow"
)

// Runner holds the fully constructed pipeline set and the worker pool
// their invocations run on.
type Runner struct {
	pool *ants.Pool

	requirement *requirement.Pipeline
	blueprint   *blueprint.Pipeline
	chat        *blueprint.ChatPipeline
	agent       *workflow.Agent

	closeSaver func() error
}

// New builds every pipeline on the given model, fails fast on any wiring
// error and returns the ready registry.
func New(cfg *config.Config, m model.Model) (*Runner, error) {
	saver, closeSaver, err := newSaver(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(cfg.Runner.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create runner pool: %w", err)
	}

	r := &Runner{pool: pool, closeSaver: closeSaver}
	if r.requirement, err = requirement.New(m, requirement.WithCheckpointSaver(saver)); err != nil {
		return nil, err
	}
	if r.blueprint, err = blueprint.New(m, blueprint.WithCheckpointSaver(saver)); err != nil {
		return nil, err
	}
	if r.chat, err = blueprint.NewChat(m, blueprint.WithCheckpointSaver(saver)); err != nil {
		return nil, err
	}
	if r.agent, err = workflow.NewAgent(m, workflow.WithCheckpointSaver(saver)); err != nil {
		return nil, err
	}
	log.Infof("runner ready: pool size %d, checkpoint backend %s",
		cfg.Runner.PoolSize, cfg.Checkpoint.Backend)
	return r, nil
}

// newSaver builds the checkpoint backend named by the configuration.
func newSaver(cfg *config.Config) (graph.CheckpointSaver, func() error, error) {
	switch cfg.Checkpoint.Backend {
	case "redis":
		saver, err := checkpointredis.NewSaver(
			checkpointredis.WithClientURL(cfg.Checkpoint.RedisURL))
		if err != nil {
			return nil, nil, fmt.Errorf("create redis checkpoint saver: %w", err)
		}
		return saver, saver.Close, nil
	default:
		return inmemory.NewSaver(), nil, nil
	}
}

// Close tears the runner down: the pool stops accepting work and the
// checkpoint backend is released.
func (r *Runner) Close() error {
	r.pool.Release()
	if r.closeSaver != nil {
		return r.closeSaver()
	}
	return nil
}

// submit runs fn on the pool and waits for its outcome or ctx.
func submit[T any](ctx context.Context, r *Runner, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	if err := r.pool.Submit(func() {
		value, err := fn()
		ch <- outcome{value: value, err: err}
	}); err != nil {
		var zero T
		return zero, fmt.Errorf("submit to runner pool: %w", err)
	}
	select {
	case out := <-ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ElicitRequirement starts a requirement elicitation thread. The returned
// error is normally a *graph.GraphInterrupt carrying the questionnaire.
func (r *Runner) ElicitRequirement(ctx context.Context, threadID, userRequest string) (graph.State, error) {
	return submit(ctx, r, func() (graph.State, error) {
		return r.requirement.Run(ctx, threadID, userRequest)
	})
}

// SubmitAnswers resumes a parked elicitation thread with the user's
// answer sheet.
func (r *Runner) SubmitAnswers(ctx context.Context, threadID string, sheet requirement.AnswerSheet) (graph.State, error) {
	return submit(ctx, r, func() (graph.State, error) {
		return r.requirement.Resume(ctx, threadID, sheet)
	})
}

// GenerateBlueprint turns a requirement document into an abstract
// workflow plus mermaid code.
func (r *Runner) GenerateBlueprint(ctx context.Context, threadID, finalDocument string) (graph.State, error) {
	return submit(ctx, r, func() (graph.State, error) {
		return r.blueprint.Run(ctx, threadID, finalDocument)
	})
}

// Chat processes one refinement message against the current workflow.
func (r *Runner) Chat(ctx context.Context, threadID, workflowJSON, userMessage string) (graph.State, error) {
	return submit(ctx, r, func() (graph.State, error) {
		return r.chat.Run(ctx, threadID, workflowJSON, userMessage)
	})
}

// BuildWorkflow runs the planner/executor agent over a blueprint and
// returns the concrete node and edge definitions.
func (r *Runner) BuildWorkflow(ctx context.Context, threadID, requirementDoc string, bp *sop.Graph) (*workflow.Result, error) {
	return submit(ctx, r, func() (*workflow.Result, error) {
		return r.agent.Run(ctx, threadID, requirementDoc, bp)
	})
}

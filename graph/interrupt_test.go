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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySaver is a minimal in-package saver so the executor tests do not
// depend on the checkpoint subpackages.
type memorySaver struct {
	checkpoints map[string]*Checkpoint
}

func newMemorySaver() *memorySaver {
	return &memorySaver{checkpoints: make(map[string]*Checkpoint)}
}

func (s *memorySaver) Put(_ context.Context, checkpoint *Checkpoint) error {
	s.checkpoints[checkpoint.ThreadID] = checkpoint
	return nil
}

func (s *memorySaver) Get(_ context.Context, threadID string) (*Checkpoint, error) {
	checkpoint, ok := s.checkpoints[threadID]
	if !ok {
		return nil, ErrCheckpointNotFound
	}
	return checkpoint, nil
}

func (s *memorySaver) Delete(_ context.Context, threadID string) error {
	delete(s.checkpoints, threadID)
	return nil
}

// waitGraph parks at "wait" until a resume value for key "answer" arrives.
func waitGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewStateGraph().
		AddNode("prepare", setKey("prepared", true)).
		AddNode("wait", func(_ context.Context, state State) (State, error) {
			if answer, ok := ResumeValue[string](state, "answer"); ok {
				return State{"answer": answer}, nil
			}
			return nil, Interrupt("answer", "please answer")
		}).
		AddNode("finish", setKey("finished", true)).
		SetEntryPoint("prepare").
		AddEdge("prepare", "wait").
		AddEdge("wait", "finish").
		SetFinishPoint("finish").
		Compile()
	require.NoError(t, err)
	return g
}

func TestInterruptAndResume(t *testing.T) {
	saver := newMemorySaver()
	executor := NewExecutor(waitGraph(t), WithCheckpointSaver(saver))
	ctx := context.Background()

	state, err := executor.Invoke(ctx, "t1", nil)
	interrupt, ok := GetInterrupt(err)
	require.True(t, ok, "expected an interrupt, got %v", err)
	assert.Equal(t, "answer", interrupt.Key)
	assert.Equal(t, "wait", interrupt.NodeID)
	assert.Equal(t, "please answer", interrupt.Value)
	assert.Equal(t, true, state["prepared"])

	checkpoint, err := saver.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, CheckpointStatusInterrupted, checkpoint.Status)
	assert.Equal(t, "wait", checkpoint.NodeID)
	assert.Equal(t, "answer", checkpoint.InterruptKey)

	state, err = executor.Resume(ctx, "t1", map[string]any{"answer": "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", state.String("answer"))
	assert.Equal(t, true, state["finished"])

	checkpoint, err = saver.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, CheckpointStatusCompleted, checkpoint.Status)
}

func TestResumeWithoutValueRepeatsSuspension(t *testing.T) {
	saver := newMemorySaver()
	executor := NewExecutor(waitGraph(t), WithCheckpointSaver(saver))
	ctx := context.Background()

	_, err := executor.Invoke(ctx, "t1", nil)
	require.True(t, IsInterrupt(err))

	// An empty resume finds no injected value and parks again.
	_, err = executor.Resume(ctx, "t1", nil)
	interrupt, ok := GetInterrupt(err)
	require.True(t, ok)
	assert.Equal(t, "answer", interrupt.Key)

	// The thread is still resumable afterwards.
	state, err := executor.Resume(ctx, "t1", map[string]any{"answer": "later"})
	require.NoError(t, err)
	assert.Equal(t, "later", state.String("answer"))
}

func TestResumeErrors(t *testing.T) {
	saver := newMemorySaver()
	executor := NewExecutor(waitGraph(t), WithCheckpointSaver(saver))
	ctx := context.Background()

	_, err := executor.Resume(ctx, "", nil)
	require.ErrorIs(t, err, ErrThreadIDEmpty)

	_, err = executor.Resume(ctx, "unknown", nil)
	require.ErrorIs(t, err, ErrCheckpointNotFound)

	_, err = executor.Invoke(ctx, "t1", nil)
	require.True(t, IsInterrupt(err))
	_, err = executor.Resume(ctx, "t1", map[string]any{"answer": "done"})
	require.NoError(t, err)

	_, err = executor.Resume(ctx, "t1", map[string]any{"answer": "again"})
	require.ErrorIs(t, err, ErrThreadCompleted)
}

func TestResumeWithoutSaver(t *testing.T) {
	executor := NewExecutor(waitGraph(t))
	_, err := executor.Resume(context.Background(), "t1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checkpoint saver")
}

func TestResumeSurvivesStateRoundTrip(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}
	saver := newMemorySaver()
	g, err := NewStateGraph().
		AddNode("store", func(_ context.Context, _ State) (State, error) {
			return State{"doc": doc{Name: "x"}}, nil
		}).
		AddNode("wait", func(_ context.Context, state State) (State, error) {
			if _, ok := ResumeValue[string](state, "go"); ok {
				return State{}, nil
			}
			return nil, Interrupt("go", nil)
		}).
		SetEntryPoint("store").
		AddEdge("store", "wait").
		SetFinishPoint("wait").
		Compile()
	require.NoError(t, err)
	executor := NewExecutor(g, WithCheckpointSaver(saver))
	ctx := context.Background()

	_, err = executor.Invoke(ctx, "t1", nil)
	require.True(t, IsInterrupt(err))

	// The checkpointed state went through JSON, typed values degrade to
	// maps but stay decodable.
	state, err := executor.Resume(ctx, "t1", map[string]any{"go": "yes"})
	require.NoError(t, err)
	var out doc
	require.NoError(t, state.Decode("doc", &out))
	assert.Equal(t, "x", out.Name)
}

func TestResumeValueDecodesTypedPayload(t *testing.T) {
	type sheet struct {
		Answer string `json:"answer"`
	}
	state := State{}
	injectResume(state, "k", map[string]any{"answer": "a"})

	got, ok := ResumeValue[sheet](state, "k")
	require.True(t, ok)
	assert.Equal(t, "a", got.Answer)

	_, ok = ResumeValue[sheet](state, "other")
	assert.False(t, ok)
}

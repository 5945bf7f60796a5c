//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
)

func newTestSaver(t *testing.T) *Saver {
	t.Helper()
	server := miniredis.RunT(t)
	saver, err := NewSaver(WithClientURL("redis://" + server.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = saver.Close() })
	return saver
}

func TestNewSaverValidation(t *testing.T) {
	_, err := NewSaver()
	require.Error(t, err)

	_, err = NewSaver(WithClientURL("not a url"))
	require.Error(t, err)
}

func TestSaverRoundTrip(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()

	_, err := saver.Get(ctx, "t1")
	require.ErrorIs(t, err, graph.ErrCheckpointNotFound)

	checkpoint := graph.NewCheckpoint("t1", "wait", graph.CheckpointStatusInterrupted,
		graph.State{"draft": "content", "count": float64(3)})
	checkpoint.InterruptKey = "answers"
	require.NoError(t, saver.Put(ctx, checkpoint))

	got, err := saver.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, checkpoint.ID, got.ID)
	assert.Equal(t, "wait", got.NodeID)
	assert.Equal(t, "answers", got.InterruptKey)
	assert.Equal(t, "content", got.State.String("draft"))
	assert.Equal(t, float64(3), got.State["count"])

	require.NoError(t, saver.Delete(ctx, "t1"))
	_, err = saver.Get(ctx, "t1")
	require.ErrorIs(t, err, graph.ErrCheckpointNotFound)
}

func TestPutRequiresThreadID(t *testing.T) {
	saver := newTestSaver(t)
	err := saver.Put(context.Background(), &graph.Checkpoint{})
	require.ErrorIs(t, err, graph.ErrThreadIDEmpty)
}

func TestSaverBacksExecutorResume(t *testing.T) {
	saver := newTestSaver(t)
	g, err := graph.NewStateGraph().
		AddNode("wait", func(_ context.Context, state graph.State) (graph.State, error) {
			if v, ok := graph.ResumeValue[string](state, "k"); ok {
				return graph.State{"got": v}, nil
			}
			return nil, graph.Interrupt("k", "waiting")
		}).
		SetEntryPoint("wait").
		SetFinishPoint("wait").
		Compile()
	require.NoError(t, err)
	executor := graph.NewExecutor(g, graph.WithCheckpointSaver(saver))
	ctx := context.Background()

	_, err = executor.Invoke(ctx, "t1", graph.State{"seed": "s"})
	require.True(t, graph.IsInterrupt(err))

	state, err := executor.Resume(ctx, "t1", map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "v", state.String("got"))
	assert.Equal(t, "s", state.String("seed"))
}

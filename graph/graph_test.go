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

func passthrough(_ context.Context, _ State) (State, error) {
	return State{}, nil
}

func setKey(key string, value any) NodeFunc {
	return func(_ context.Context, _ State) (State, error) {
		return State{key: value}, nil
	}
}

func TestCompileValidation(t *testing.T) {
	t.Run("entry point not set", func(t *testing.T) {
		_, err := NewStateGraph().
			AddNode("a", passthrough).
			SetFinishPoint("a").
			Compile()
		require.ErrorIs(t, err, ErrEntryPointNotSet)
	})

	t.Run("duplicate node", func(t *testing.T) {
		_, err := NewStateGraph().
			AddNode("a", passthrough).
			AddNode("a", passthrough).
			SetEntryPoint("a").
			SetFinishPoint("a").
			Compile()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("edge to unknown node", func(t *testing.T) {
		_, err := NewStateGraph().
			AddNode("a", passthrough).
			SetEntryPoint("a").
			AddEdge("a", "missing").
			Compile()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown node")
	})

	t.Run("node without outgoing edge", func(t *testing.T) {
		_, err := NewStateGraph().
			AddNode("a", passthrough).
			AddNode("b", passthrough).
			SetEntryPoint("a").
			AddEdge("a", "b").
			Compile()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no outgoing edge")
	})

	t.Run("conditional target validated", func(t *testing.T) {
		_, err := NewStateGraph().
			AddNode("a", passthrough).
			SetEntryPoint("a").
			AddConditionalEdges("a", func(_ context.Context, _ State) (string, error) {
				return "x", nil
			}, map[string]string{"x": "missing"}).
			Compile()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown node")
	})
}

func TestInvokeLinear(t *testing.T) {
	g, err := NewStateGraph().
		AddNode("first", setKey("first", "one")).
		AddNode("second", setKey("second", "two")).
		SetEntryPoint("first").
		AddEdge("first", "second").
		SetFinishPoint("second").
		Compile()
	require.NoError(t, err)

	state, err := NewExecutor(g).Invoke(context.Background(), "t1", State{"seed": "s"})
	require.NoError(t, err)
	assert.Equal(t, "s", state.String("seed"))
	assert.Equal(t, "one", state.String("first"))
	assert.Equal(t, "two", state.String("second"))
}

func TestInvokeRequiresThreadID(t *testing.T) {
	g, err := NewStateGraph().
		AddNode("a", passthrough).
		SetEntryPoint("a").
		SetFinishPoint("a").
		Compile()
	require.NoError(t, err)

	_, err = NewExecutor(g).Invoke(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrThreadIDEmpty)
}

func TestConditionalRouting(t *testing.T) {
	build := func(route string) (*Graph, error) {
		return NewStateGraph().
			AddNode("decide", passthrough).
			AddNode("left", setKey("branch", "left")).
			AddNode("right", setKey("branch", "right")).
			SetEntryPoint("decide").
			AddConditionalEdges("decide", func(_ context.Context, _ State) (string, error) {
				return route, nil
			}, map[string]string{"l": "left", "r": "right"}).
			SetFinishPoint("left").
			SetFinishPoint("right").
			Compile()
	}

	g, err := build("r")
	require.NoError(t, err)
	state, err := NewExecutor(g).Invoke(context.Background(), "t1", nil)
	require.NoError(t, err)
	assert.Equal(t, "right", state.String("branch"))

	g, err = build("nope")
	require.NoError(t, err)
	_, err = NewExecutor(g).Invoke(context.Background(), "t2", nil)
	require.ErrorIs(t, err, ErrUnknownRoute)
}

func TestConditionalEndTarget(t *testing.T) {
	g, err := NewStateGraph().
		AddNode("a", setKey("visited", true)).
		SetEntryPoint("a").
		AddConditionalEdges("a", func(_ context.Context, _ State) (string, error) {
			return "stop", nil
		}, map[string]string{"stop": End}).
		Compile()
	require.NoError(t, err)

	state, err := NewExecutor(g).Invoke(context.Background(), "t1", nil)
	require.NoError(t, err)
	assert.Equal(t, true, state["visited"])
}

func TestStateDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	state := State{"p": map[string]any{"name": "x"}}

	var out payload
	require.NoError(t, state.Decode("p", &out))
	assert.Equal(t, "x", out.Name)

	require.Error(t, state.Decode("missing", &out))
}

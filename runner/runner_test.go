//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flowgen-go/config"
	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
	"trpc.group/trpc-go/trpc-flowgen-go/requirement"
)

// scriptedModel replays canned replies in call order.
type scriptedModel struct {
	replies []string
	calls   int
}

func (s *scriptedModel) Info() model.Info {
	return model.Info{Name: "scripted"}
}

func (s *scriptedModel) GenerateContent(_ context.Context, _ *model.Request) (*model.Response, error) {
	if s.calls >= len(s.replies) {
		return nil, fmt.Errorf("scripted model exhausted after %d calls", s.calls)
	}
	reply := s.replies[s.calls]
	s.calls++
	return &model.Response{Choices: []model.Choice{{
		Message: model.NewAssistantMessage(reply),
	}}}, nil
}

func TestRunnerElicitationThroughPool(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"A draft.",
		"```json\n" + `{"questions": [{"id": "q1", "question": "Scope?",
			"options": [{"value": "A", "label": "Narrow"}]}]}` + "\n```",
		"```json\n" + `{"requirement_name": "Research assistant",
			"mission_statement": "m", "user_and_scenario": "u",
			"user_input": "i", "ai_output": "o",
			"success_criteria": "s", "boundaries_and_limitations": "b"}` + "\n```",
	}}
	r, err := New(config.Default(), m)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, r.Close())
	}()
	ctx := context.Background()

	_, err = r.ElicitRequirement(ctx, "t1", "I want a research workflow")
	interrupt, ok := graph.GetInterrupt(err)
	require.True(t, ok, "expected interrupt, got %v", err)
	assert.Equal(t, requirement.InterruptKeyAnswers, interrupt.Key)

	state, err := r.SubmitAnswers(ctx, "t1", requirement.AnswerSheet{
		Answers: []requirement.Answer{{QuestionID: "q1", SelectedOption: "A"}},
	})
	require.NoError(t, err)
	document, err := requirement.FinalDocument(state)
	require.NoError(t, err)
	assert.Equal(t, "Research assistant", document.RequirementName)
}

// blockingModel parks every generation until its context ends.
type blockingModel struct{}

func (blockingModel) Info() model.Info {
	return model.Info{Name: "blocking"}
}

func (blockingModel) GenerateContent(ctx context.Context, _ *model.Request) (*model.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunnerHonorsContextCancellation(t *testing.T) {
	r, err := New(config.Default(), blockingModel{})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, r.Close())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ElicitRequirement(ctx, "t1", "request")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerRejectsBadRedisURL(t *testing.T) {
	cfg := config.Default()
	cfg.Checkpoint.Backend = "redis"
	cfg.Checkpoint.RedisURL = "not a url"

	_, err := New(cfg, &scriptedModel{})
	require.Error(t, err)
}

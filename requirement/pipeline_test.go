//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package requirement

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/graph/checkpoint/inmemory"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
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

const questionnaireReply = "```json\n" + `{
  "questions": [
    {
      "id": "q1",
      "question": "How fresh should results be?",
      "options": [
        {"value": "A", "label": "Recent"},
        {"value": "B", "label": "Any time"}
      ],
      "allow_custom": true
    }
  ]
}` + "\n```"

const documentReply = "```json\n" + `{
  "requirement_name": "Research assistant",
  "mission_statement": "Answer questions with recent material.",
  "user_and_scenario": "Curious users.",
  "user_input": "A topic.",
  "ai_output": "A summary.",
  "success_criteria": "Accurate and short.",
  "boundaries_and_limitations": "No speculation."
}` + "\n```"

func TestPipelineElicitation(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"A draft of the product idea.",
		questionnaireReply,
		documentReply,
	}}
	pipeline, err := New(m, WithCheckpointSaver(inmemory.NewSaver()))
	require.NoError(t, err)
	ctx := context.Background()

	// The run parks at the questionnaire.
	state, err := pipeline.Run(ctx, "t1", "I want a research workflow")
	interrupt, ok := graph.GetInterrupt(err)
	require.True(t, ok, "expected interrupt, got %v", err)
	assert.Equal(t, InterruptKeyAnswers, interrupt.Key)
	payload, ok := interrupt.Value.(InterruptPayload)
	require.True(t, ok)
	assert.True(t, payload.Required)
	require.NotNil(t, payload.Questionnaire)
	require.Len(t, payload.Questionnaire.Questions, 1)
	assert.Equal(t, "q1", payload.Questionnaire.Questions[0].ID)
	// The free-text flag must reach the resumer untouched.
	assert.True(t, payload.Questionnaire.Questions[0].AllowCustom)
	assert.Equal(t, "A draft of the product idea.", state.String(StateKeyProductDraft))

	// Resuming with the answer sheet finishes the document.
	state, err = pipeline.Resume(ctx, "t1", AnswerSheet{
		Answers:                []Answer{{QuestionID: "q1", SelectedOption: "A"}},
		AdditionalRequirements: "Stay under 200 words",
	})
	require.NoError(t, err)
	document, err := FinalDocument(state)
	require.NoError(t, err)
	assert.Equal(t, "Research assistant", document.RequirementName)
	assert.Equal(t, "No speculation.", document.BoundariesAndLimitations)
	assert.Equal(t, 3, m.calls)
}

func TestResumeWithoutAnswersParksAgain(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"Draft.",
		questionnaireReply,
		documentReply,
	}}
	pipeline, err := New(m, WithCheckpointSaver(inmemory.NewSaver()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = pipeline.Run(ctx, "t1", "request")
	require.True(t, graph.IsInterrupt(err))

	// An empty resume repeats the suspension without re-running the
	// earlier stages.
	_, err = pipeline.executor.Resume(ctx, "t1", nil)
	interrupt, ok := graph.GetInterrupt(err)
	require.True(t, ok)
	assert.Equal(t, InterruptKeyAnswers, interrupt.Key)
	assert.Equal(t, 2, m.calls)

	// The thread is still completable afterwards.
	state, err := pipeline.Resume(ctx, "t1", AnswerSheet{})
	require.NoError(t, err)
	_, err = FinalDocument(state)
	require.NoError(t, err)
	assert.Equal(t, 3, m.calls)
}

func TestMalformedQuestionnaireFailsRun(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"Draft.",
		"I would rather chat about the weather.",
	}}
	pipeline, err := New(m, WithCheckpointSaver(inmemory.NewSaver()))
	require.NoError(t, err)

	_, err = pipeline.Run(context.Background(), "t1", "request")
	var parseErr *model.ResponseParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "question_generator", parseErr.Stage)
}

func TestMalformedFinalDocumentKeptVerbatim(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"Draft.",
		questionnaireReply,
		"Here is the final document in prose instead of JSON.",
	}}
	pipeline, err := New(m, WithCheckpointSaver(inmemory.NewSaver()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = pipeline.Run(ctx, "t1", "request")
	require.True(t, graph.IsInterrupt(err))

	// A prose reply is kept raw instead of failing the elicitation.
	state, err := pipeline.Resume(ctx, "t1", AnswerSheet{})
	require.NoError(t, err)
	var kept map[string]any
	require.NoError(t, state.Decode(StateKeyFinalDocument, &kept))
	assert.Equal(t, "Here is the final document in prose instead of JSON.", kept["content"])
}

func TestInterruptPayloadSurvivesCheckpoint(t *testing.T) {
	m := &scriptedModel{replies: []string{
		"Draft.",
		questionnaireReply,
		documentReply,
	}}
	saver := inmemory.NewSaver()
	pipeline, err := New(m, WithCheckpointSaver(saver))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = pipeline.Run(ctx, "t1", "request")
	require.True(t, graph.IsInterrupt(err))

	checkpoint, err := saver.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, graph.CheckpointStatusInterrupted, checkpoint.Status)
	assert.Equal(t, InterruptKeyAnswers, checkpoint.InterruptKey)

	// The questionnaire is still readable from the durable state.
	var questionnaire Questionnaire
	require.NoError(t, checkpoint.State.Decode(StateKeyQuestionnaire, &questionnaire))
	require.Len(t, questionnaire.Questions, 1)
	assert.Len(t, questionnaire.Questions[0].Options, 2)
	assert.True(t, questionnaire.Questions[0].AllowCustom)
}

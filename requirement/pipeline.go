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
	"encoding/json"
	"fmt"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
	"trpc.group/trpc-go/trpc-flowgen-go/internal/jsonblock"
	"trpc.group/trpc-go/trpc-flowgen-go/log"
	"trpc.group/trpc-go/trpc-flowgen-go/model"
)

// Node ids of the elicitation pipeline.
const (
	nodeDraftGenerator     = "draft_generator"
	nodeQuestionGenerator  = "question_generator"
	nodeUserAnswersHandler = "user_answers_handler"
	nodeDocumentFinalizer  = "document_finalizer"
)

// Pipeline is the requirement elicitation pipeline:
// draft -> questionnaire -> wait for answers -> final document.
type Pipeline struct {
	model    model.Model
	executor *graph.Executor
}

// Options configures a Pipeline.
type Options struct {
	saver graph.CheckpointSaver
}

// PipelineOption is the option for New.
type PipelineOption func(*Options)

// WithCheckpointSaver sets where interrupted threads are persisted.
func WithCheckpointSaver(saver graph.CheckpointSaver) PipelineOption {
	return func(opts *Options) {
		opts.saver = saver
	}
}

// New builds the elicitation pipeline on top of the given model.
func New(m model.Model, opts ...PipelineOption) (*Pipeline, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	p := &Pipeline{model: m}

	g, err := graph.NewStateGraph().
		AddNode(nodeDraftGenerator, p.generateDraft,
			graph.WithDescription("Expand the user request into a product draft")).
		AddNode(nodeQuestionGenerator, p.generateQuestions,
			graph.WithDescription("Turn the draft into a clarifying questionnaire")).
		AddNode(nodeUserAnswersHandler, p.collectAnswers,
			graph.WithDescription("Park until the user answers the questionnaire")).
		AddNode(nodeDocumentFinalizer, p.finalizeDocument,
			graph.WithDescription("Write the final requirement document")).
		SetEntryPoint(nodeDraftGenerator).
		AddEdge(nodeDraftGenerator, nodeQuestionGenerator).
		AddEdge(nodeQuestionGenerator, nodeUserAnswersHandler).
		AddEdge(nodeUserAnswersHandler, nodeDocumentFinalizer).
		SetFinishPoint(nodeDocumentFinalizer).
		Compile()
	if err != nil {
		return nil, fmt.Errorf("compile requirement pipeline: %w", err)
	}

	var executorOpts []graph.ExecutorOption
	if options.saver != nil {
		executorOpts = append(executorOpts, graph.WithCheckpointSaver(options.saver))
	}
	p.executor = graph.NewExecutor(g, executorOpts...)
	return p, nil
}

// Run starts a fresh elicitation for the given thread. It normally returns
// with a *graph.GraphInterrupt error carrying the questionnaire; call
// Resume with the user's answers to finish.
func (p *Pipeline) Run(ctx context.Context, threadID, userRequest string) (graph.State, error) {
	return p.executor.Invoke(ctx, threadID, graph.State{
		StateKeyUserRequest: userRequest,
	})
}

// Resume continues a parked thread with the user's answer sheet.
func (p *Pipeline) Resume(ctx context.Context, threadID string, sheet AnswerSheet) (graph.State, error) {
	return p.executor.Resume(ctx, threadID, map[string]any{
		InterruptKeyAnswers: sheet,
	})
}

func (p *Pipeline) generateDraft(ctx context.Context, state graph.State) (graph.State, error) {
	userRequest := state.String(StateKeyUserRequest)
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(draftPrompt),
			model.NewUserMessage("USER_REQUEST:\n" + userRequest),
		},
	})
	if err != nil {
		return nil, err
	}
	draft := response.Message().Content
	log.Debugf("requirement: generated draft (%d bytes)", len(draft))
	return graph.State{StateKeyProductDraft: draft}, nil
}

func (p *Pipeline) generateQuestions(ctx context.Context, state graph.State) (graph.State, error) {
	draft := state.String(StateKeyProductDraft)
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(questionsPrompt),
			model.NewUserMessage("PRODUCT_DRAFT:\n" + draft),
		},
	})
	if err != nil {
		return nil, err
	}
	raw := response.Message().Content
	payload, err := jsonblock.Extract(raw)
	if err != nil {
		return nil, &model.ResponseParseError{Stage: nodeQuestionGenerator, Raw: raw, Err: err}
	}
	var questionnaire Questionnaire
	if err := json.Unmarshal([]byte(payload), &questionnaire); err != nil {
		return nil, &model.ResponseParseError{Stage: nodeQuestionGenerator, Raw: raw, Err: err}
	}
	log.Debugf("requirement: questionnaire with %d questions", len(questionnaire.Questions))
	return graph.State{StateKeyQuestionnaire: questionnaire}, nil
}

// collectAnswers parks the run until the caller resumes it with an
// AnswerSheet. A resumed execution finds the injected sheet and passes
// straight through, so resuming is idempotent up to the parked node.
func (p *Pipeline) collectAnswers(_ context.Context, state graph.State) (graph.State, error) {
	if sheet, ok := graph.ResumeValue[AnswerSheet](state, InterruptKeyAnswers); ok {
		return graph.State{
			StateKeyUserAnswers:            sheet.Answers,
			StateKeyAdditionalRequirements: sheet.AdditionalRequirements,
		}, nil
	}
	var questionnaire *Questionnaire
	if q, err := decodeQuestionnaire(state); err == nil {
		questionnaire = q
	}
	return nil, graph.Interrupt(InterruptKeyAnswers, InterruptPayload{
		Message:       "Waiting for the user to answer the questionnaire",
		Questionnaire: questionnaire,
		Required:      true,
	})
}

func (p *Pipeline) finalizeDocument(ctx context.Context, state graph.State) (graph.State, error) {
	var answers []Answer
	if err := state.Decode(StateKeyUserAnswers, &answers); err != nil {
		return nil, fmt.Errorf("decode user answers: %w", err)
	}
	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, err
	}
	questionnaireJSON := "{}"
	if q, err := decodeQuestionnaire(state); err == nil {
		if raw, err := json.MarshalIndent(q, "", "  "); err == nil {
			questionnaireJSON = string(raw)
		}
	}
	additional := state.String(StateKeyAdditionalRequirements)
	if additional == "" {
		additional = "No additional requirements"
	}

	userContent := fmt.Sprintf(
		"PRODUCT_DRAFT:\n%s\n\nQUESTIONNAIRE:\n%s\n\nUSER_ANSWERS:\n%s\n\nADDITIONAL_REQUIREMENTS:\n%s",
		state.String(StateKeyProductDraft), questionnaireJSON, answersJSON, additional)
	response, err := p.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(finalizePrompt),
			model.NewUserMessage(userContent),
		},
	})
	if err != nil {
		return nil, err
	}
	raw := response.Message().Content
	payload, err := jsonblock.Extract(raw)
	if err != nil {
		// A malformed final reply is still useful prose; keep it verbatim
		// instead of failing the whole elicitation.
		log.Warnf("requirement: final document is not valid JSON, keeping raw content")
		return graph.State{StateKeyFinalDocument: map[string]any{"content": raw}}, nil
	}
	var document Document
	if err := json.Unmarshal([]byte(payload), &document); err != nil {
		log.Warnf("requirement: final document is not valid JSON, keeping raw content")
		return graph.State{StateKeyFinalDocument: map[string]any{"content": raw}}, nil
	}
	return graph.State{StateKeyFinalDocument: document}, nil
}

// decodeQuestionnaire reads the questionnaire back from state, tolerating
// the map form it takes after a checkpoint round trip.
func decodeQuestionnaire(state graph.State) (*Questionnaire, error) {
	var questionnaire Questionnaire
	if err := state.Decode(StateKeyQuestionnaire, &questionnaire); err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

// FinalDocument extracts the finished document from a completed run's state.
func FinalDocument(state graph.State) (*Document, error) {
	var document Document
	if err := state.Decode(StateKeyFinalDocument, &document); err != nil {
		return nil, fmt.Errorf("decode final document: %w", err)
	}
	return &document, nil
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package requirement elicits a structured requirement document from a
// one-line user request. The pipeline drafts a product sketch, turns it
// into a clarifying questionnaire, parks until the user answers, then
// writes the final document.
package requirement

// State keys used by the elicitation pipeline.
const (
	StateKeyUserRequest            = "user_request"
	StateKeyProductDraft           = "product_draft"
	StateKeyQuestionnaire          = "questionnaire"
	StateKeyUserAnswers            = "user_answers"
	StateKeyAdditionalRequirements = "additional_requirements"
	StateKeyFinalDocument          = "final_document"
)

// InterruptKeyAnswers identifies the questionnaire interrupt point.
const InterruptKeyAnswers = "user_answers"

// Document is the structured requirement record the pipeline produces.
type Document struct {
	// RequirementName is a short name for the workflow.
	RequirementName string `json:"requirement_name,omitempty"`
	// MissionStatement captures why the workflow exists.
	MissionStatement string `json:"mission_statement,omitempty"`
	// UserAndScenario captures who uses it and in which situation.
	UserAndScenario string `json:"user_and_scenario,omitempty"`
	// UserInput describes the instructions or material the user provides.
	UserInput string `json:"user_input,omitempty"`
	// AIOutput describes the ideal result in the user's eyes.
	AIOutput string `json:"ai_output,omitempty"`
	// SuccessCriteria are the objective quality measures.
	SuccessCriteria string `json:"success_criteria,omitempty"`
	// BoundariesAndLimitations name what the workflow must not do.
	BoundariesAndLimitations string `json:"boundaries_and_limitations,omitempty"`
}

// Option is one selectable answer of a questionnaire question.
type Option struct {
	// Value is the option's identifier, typically upper case.
	Value string `json:"value"`
	// Label is the text shown to the user.
	Label string `json:"label"`
}

// Question is one clarifying question with its options.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
	// AllowCustom marks questions that accept a free-text answer on top
	// of the listed options.
	AllowCustom bool `json:"allow_custom,omitempty"`
}

// Questionnaire is the set of clarifying questions shown to the user.
type Questionnaire struct {
	Questions []Question `json:"questions"`
}

// Answer is the user's reply to one questionnaire question.
type Answer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	CustomInput    string `json:"custom_input,omitempty"`
}

// AnswerSheet is the payload an external caller submits to resume the
// pipeline after the questionnaire interrupt.
type AnswerSheet struct {
	Answers                []Answer `json:"user_answers"`
	AdditionalRequirements string   `json:"additional_requirements,omitempty"`
}

// InterruptPayload is what the questionnaire interrupt surfaces to the
// caller while the pipeline is parked.
type InterruptPayload struct {
	Message       string         `json:"message"`
	Questionnaire *Questionnaire `json:"questionnaire"`
	Required      bool           `json:"required"`
}

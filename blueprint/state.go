//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package blueprint turns a requirement document into an abstract workflow
// blueprint and keeps it in sync with the user through a chat refinement
// loop. Each blueprint is accompanied by mermaid code for rendering.
package blueprint

// State keys used by the generation pipeline.
const (
	StateKeyFinalDocument = "final_document"
	StateKeyWorkflow      = "workflow"
	StateKeyMermaidCode   = "mermaid_code"
)

// State keys used by the chat refinement pipeline.
const (
	StateKeyUserMessage     = "user_message"
	StateKeyReply           = "reply"
	StateKeyDecision        = "decision"
	StateKeyRefinedWorkflow = "refined_workflow"
)

// Decisions of the refinement gate. The deciding model must answer with
// exactly one of these tokens.
const (
	DecisionUpdate = "update"
	DecisionEnd    = "end"
)

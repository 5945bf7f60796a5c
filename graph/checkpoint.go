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
	"time"

	"github.com/google/uuid"
)

// Checkpoint statuses.
const (
	// CheckpointStatusInterrupted marks a thread parked at an interrupt.
	CheckpointStatusInterrupted = "interrupted"
	// CheckpointStatusCompleted marks a thread that ran to End.
	CheckpointStatusCompleted = "completed"
)

// Checkpoint is a durable snapshot of one thread's execution: the full state
// plus the node to re-enter on resume. The entire intermediate state must be
// serializable; resumption never relies on in-process memory.
type Checkpoint struct {
	// ID is the unique identifier for this checkpoint.
	ID string `json:"id"`
	// ThreadID is the logical session the checkpoint belongs to.
	ThreadID string `json:"thread_id"`
	// NodeID is the node execution re-enters on resume.
	NodeID string `json:"node_id"`
	// Status is CheckpointStatusInterrupted or CheckpointStatusCompleted.
	Status string `json:"status"`
	// State is the full pipeline state at checkpoint time.
	State State `json:"state"`
	// InterruptKey is the key of the pending interrupt, if any.
	InterruptKey string `json:"interrupt_key,omitempty"`
	// Timestamp is when the checkpoint was created.
	Timestamp time.Time `json:"ts"`
}

// NewCheckpoint creates a checkpoint for the given thread.
func NewCheckpoint(threadID, nodeID, status string, state State) *Checkpoint {
	return &Checkpoint{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		NodeID:    nodeID,
		Status:    status,
		State:     state,
		Timestamp: time.Now().UTC(),
	}
}

// CheckpointSaver is the interface for checkpoint storage backends.
// Implementations keep the latest checkpoint per thread ID.
type CheckpointSaver interface {
	// Put stores a checkpoint, replacing any previous one for its thread.
	Put(ctx context.Context, checkpoint *Checkpoint) error
	// Get retrieves the latest checkpoint for a thread.
	// Returns ErrCheckpointNotFound when the thread has none.
	Get(ctx context.Context, threadID string) (*Checkpoint, error)
	// Delete removes all checkpoints for a thread.
	Delete(ctx context.Context, threadID string) error
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory checkpoint saver, suitable for
// tests and single-process deployments.
package inmemory

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
)

// Saver stores the latest checkpoint per thread in a map.
type Saver struct {
	mu          sync.RWMutex
	checkpoints map[string]*graph.Checkpoint
}

// NewSaver creates a new in-memory checkpoint saver.
func NewSaver() *Saver {
	return &Saver{checkpoints: make(map[string]*graph.Checkpoint)}
}

// Put stores a checkpoint, replacing any previous one for its thread.
func (s *Saver) Put(_ context.Context, checkpoint *graph.Checkpoint) error {
	if checkpoint.ThreadID == "" {
		return graph.ErrThreadIDEmpty
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[checkpoint.ThreadID] = checkpoint
	return nil
}

// Get retrieves the latest checkpoint for a thread.
func (s *Saver) Get(_ context.Context, threadID string) (*graph.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checkpoint, ok := s.checkpoints[threadID]
	if !ok {
		return nil, graph.ErrCheckpointNotFound
	}
	return checkpoint, nil
}

// Delete removes all checkpoints for a thread.
func (s *Saver) Delete(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkpoints, threadID)
	return nil
}

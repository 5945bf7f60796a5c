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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trpc.group/trpc-go/trpc-flowgen-go/graph"
)

const keyPrefix = "flowgen:checkpoint:"

// Saver stores the latest checkpoint per thread in Redis.
type Saver struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSaver creates a redis checkpoint saver from options.
func NewSaver(opts ...Option) (*Saver, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.url == "" {
		return nil, errors.New("redis checkpoint saver requires a client URL")
	}
	redisOpts, err := redis.ParseURL(o.url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Saver{client: redis.NewClient(redisOpts), ttl: o.ttl}, nil
}

// NewSaverWithClient creates a redis checkpoint saver around an existing client.
func NewSaverWithClient(client redis.UniversalClient, opts ...Option) *Saver {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Saver{client: client, ttl: o.ttl}
}

// Put stores a checkpoint, replacing any previous one for its thread.
func (s *Saver) Put(ctx context.Context, checkpoint *graph.Checkpoint) error {
	if checkpoint.ThreadID == "" {
		return graph.ErrThreadIDEmpty
	}
	raw, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+checkpoint.ThreadID, raw, s.ttl).Err()
}

// Get retrieves the latest checkpoint for a thread.
func (s *Saver) Get(ctx context.Context, threadID string) (*graph.Checkpoint, error) {
	raw, err := s.client.Get(ctx, keyPrefix+threadID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, graph.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get checkpoint for thread %s: %w", threadID, err)
	}
	var checkpoint graph.Checkpoint
	if err := json.Unmarshal(raw, &checkpoint); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoint for thread %s: %w", threadID, err)
	}
	return &checkpoint, nil
}

// Delete removes all checkpoints for a thread.
func (s *Saver) Delete(ctx context.Context, threadID string) error {
	return s.client.Del(ctx, keyPrefix+threadID).Err()
}

// Close releases the underlying client.
func (s *Saver) Close() error {
	return s.client.Close()
}

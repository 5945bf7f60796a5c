//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "errors"

var (
	// ErrEntryPointNotSet is returned when compiling a graph without an entry point.
	ErrEntryPointNotSet = errors.New("entry point not set")
	// ErrThreadIDEmpty is returned when an operation requires a thread ID.
	ErrThreadIDEmpty = errors.New("thread_id cannot be empty")
	// ErrCheckpointNotFound is returned when resuming a thread with no checkpoint.
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	// ErrUnknownRoute is returned when a condition picks a route outside its path map.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrThreadCompleted is returned when resuming a thread that already finished.
	ErrThreadCompleted = errors.New("thread already completed")
)

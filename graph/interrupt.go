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
	"encoding/json"
	"fmt"
	"time"
)

// resumePrefix namespaces resume values inside the state map.
const resumePrefix = "__resume__:"

// GraphInterrupt is the error a node returns to park execution until an
// external actor resumes the thread with a value for Key.
type GraphInterrupt struct {
	// Key identifies which interrupt point is waiting; resume values are
	// matched by this key.
	Key string
	// Value is the payload surfaced to the external resumer.
	Value any
	// NodeID is the node where the interrupt occurred. Set by the executor.
	NodeID string
	// Timestamp is when the interrupt occurred.
	Timestamp time.Time
}

// Error returns the error message for the interrupt.
func (g *GraphInterrupt) Error() string {
	return fmt.Sprintf("graph interrupted at node %s (key %s)", g.NodeID, g.Key)
}

// Interrupt creates a new GraphInterrupt with the given key and payload.
func Interrupt(key string, value any) *GraphInterrupt {
	return &GraphInterrupt{
		Key:       key,
		Value:     value,
		Timestamp: time.Now().UTC(),
	}
}

// IsInterrupt checks if an error is a GraphInterrupt.
func IsInterrupt(err error) bool {
	_, ok := err.(*GraphInterrupt)
	return ok
}

// GetInterrupt extracts a GraphInterrupt from an error.
func GetInterrupt(err error) (*GraphInterrupt, bool) {
	if interrupt, ok := err.(*GraphInterrupt); ok {
		return interrupt, true
	}
	return nil, false
}

// ResumeValue returns the resume value injected for key, decoded into T.
// Nodes call this before interrupting so that a resumed execution passes
// straight through instead of parking again.
func ResumeValue[T any](state State, key string) (T, bool) {
	var out T
	v, ok := state[resumePrefix+key]
	if !ok {
		return out, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

// injectResume stores a resume value for key into the state.
func injectResume(state State, key string, value any) {
	state[resumePrefix+key] = value
}

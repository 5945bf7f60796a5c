//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package redis provides a Redis-backed checkpoint saver for durable
// suspend/resume across processes.
package redis

import "time"

const defaultTTL = time.Hour * 24 * 7 // 7 days

var defaultOptions = Options{
	ttl: defaultTTL,
}

// Options is the options for the redis checkpoint saver.
type Options struct {
	url string
	ttl time.Duration
}

// Option is the option for the redis checkpoint saver.
type Option func(*Options)

// WithClientURL creates a redis client from the URL.
func WithClientURL(url string) Option {
	return func(opts *Options) {
		opts.url = url
	}
}

// WithTTL sets how long abandoned checkpoints are kept before expiring.
// Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(opts *Options) {
		opts.ttl = ttl
	}
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"os"

	openaiopt "github.com/openai/openai-go/option"
)

const openaiAPIKeyName = "OPENAI_API_KEY"

var defaultOptions = Options{
	APIKey: os.Getenv(openaiAPIKeyName),
}

// Options contains configuration options for the OpenAI-compatible model.
type Options struct {
	// APIKey is the API key for the provider. Defaults to $OPENAI_API_KEY.
	APIKey string
	// BaseURL overrides the provider endpoint, for OpenAI-compatible
	// providers such as SiliconFlow or DeepSeek.
	BaseURL string
	// OpenAIOptions are additional request options passed to the client.
	OpenAIOptions []openaiopt.RequestOption
}

// Option configures the model.
type Option func(*Options)

// WithAPIKey sets the API key for the client.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithBaseURL sets the base URL for the client.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithOpenAIOptions appends raw openai-go request options.
func WithOpenAIOptions(openaiOpts ...openaiopt.RequestOption) Option {
	return func(o *Options) {
		o.OpenAIOptions = append(o.OpenAIOptions, openaiOpts...)
	}
}

//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package dify

import (
	"fmt"
	"strings"
)

type httpAuthConfig struct {
	Type   string `json:"type"`
	Config any    `json:"config"`
}

type httpBody struct {
	Type string `json:"type"`
	Data []any  `json:"data"`
}

type httpTimeout struct {
	MaxConnectTimeout int `json:"max_connect_timeout"`
	MaxReadTimeout    int `json:"max_read_timeout"`
	MaxWriteTimeout   int `json:"max_write_timeout"`
}

type httpRetryConfig struct {
	RetryEnabled  bool `json:"retry_enabled"`
	MaxRetries    int  `json:"max_retries"`
	RetryInterval int  `json:"retry_interval"`
}

type httpRequestNodeData struct {
	Type          NodeKind        `json:"type"`
	Title         string          `json:"title"`
	Desc          string          `json:"desc"`
	Variables     []NodeVariable  `json:"variables"`
	Selected      bool            `json:"selected"`
	Method        string          `json:"method"`
	URL           string          `json:"url"`
	Authorization httpAuthConfig  `json:"authorization"`
	Headers       string          `json:"headers"`
	Params        string          `json:"params"`
	Body          httpBody        `json:"body"`
	SSLVerify     bool            `json:"ssl_verify"`
	Timeout       httpTimeout     `json:"timeout"`
	RetryConfig   httpRetryConfig `json:"retry_config"`
}

// HTTPRequestNodeArgs configures an HTTP request node.
type HTTPRequestNodeArgs struct {
	NodeID string `json:"node_id" description:"Unique identifier of the node (e.g. \"http_request_1\")."`
	XPos   int    `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int    `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	URL    string `json:"url" description:"Target URL. May interpolate upstream outputs, e.g. https://api.example.com/users/{{#user_node.user_id#}}."`
	Method string `json:"method,omitempty" description:"HTTP method, one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS. Defaults to GET."`
	Title  string `json:"title,omitempty" description:"Display title of the node. Defaults to \"HTTP Request\"."`
	Desc   string `json:"desc,omitempty" description:"Optional node description."`
	// Headers and Params are JSON strings, matching the canvas editor.
	Headers           string `json:"headers,omitempty" description:"Request headers as a JSON string."`
	Params            string `json:"params,omitempty" description:"Query parameters as a JSON string."`
	AuthorizationType string `json:"authorization_type,omitempty" description:"One of no-auth, bearer, api-key, basic. Defaults to no-auth."`
	AuthorizationConf any    `json:"authorization_config,omitempty" description:"Credential payload for the chosen authorization type, e.g. {\"token\": \"{{#auth_node.access_token#}}\"}."`
	BodyType          string `json:"body_type,omitempty" description:"One of none, form-data, x-www-form-urlencoded, raw-text, json, xml. Defaults to none."`
	BodyData          []any  `json:"body_data,omitempty" description:"Request body entries for the chosen body type."`
	SSLVerifyDisabled bool   `json:"ssl_verify_disabled,omitempty" description:"Set to true to skip TLS certificate verification."`
	MaxConnectTimeout int    `json:"max_connect_timeout,omitempty" description:"Connect timeout in seconds, 0 means platform default."`
	MaxReadTimeout    int    `json:"max_read_timeout,omitempty" description:"Read timeout in seconds, 0 means platform default."`
	MaxWriteTimeout   int    `json:"max_write_timeout,omitempty" description:"Write timeout in seconds, 0 means platform default."`
	RetryDisabled     bool   `json:"retry_disabled,omitempty" description:"Set to true to disable retries."`
	MaxRetries        int    `json:"max_retries,omitempty" description:"Maximum retry count, defaults to 3."`
	RetryInterval     int    `json:"retry_interval,omitempty" description:"Retry interval in milliseconds, defaults to 100."`
}

var (
	httpMethods   = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}
	httpAuthTypes = []string{"no-auth", "bearer", "api-key", "basic"}
	httpBodyTypes = []string{"none", "form-data", "x-www-form-urlencoded", "raw-text", "json", "xml"}
)

// BuildHTTPRequestNode creates a node that calls an external API or fetches
// a network resource.
func BuildHTTPRequestNode(args HTTPRequestNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindHTTPRequest, "node_id", "is required")
	}
	if args.URL == "" {
		return nil, invalidConfig(KindHTTPRequest, "url", "is required")
	}
	method := strings.ToUpper(args.Method)
	if method == "" {
		method = "GET"
	}
	if err := checkOption("http method", method, httpMethods); err != nil {
		return nil, err
	}
	if args.AuthorizationType == "" {
		args.AuthorizationType = "no-auth"
	}
	if err := checkOption("authorization type", args.AuthorizationType, httpAuthTypes); err != nil {
		return nil, err
	}
	if args.BodyType == "" {
		args.BodyType = "none"
	}
	if err := checkOption("body type", args.BodyType, httpBodyTypes); err != nil {
		return nil, err
	}
	if args.Title == "" {
		args.Title = "HTTP Request"
	}
	if args.MaxRetries == 0 {
		args.MaxRetries = 3
	}
	if args.RetryInterval == 0 {
		args.RetryInterval = 100
	}
	bodyData := args.BodyData
	if bodyData == nil {
		bodyData = []any{}
	}
	data := &httpRequestNodeData{
		Type:      KindHTTPRequest,
		Title:     args.Title,
		Desc:      args.Desc,
		Variables: []NodeVariable{},
		Method:    method,
		URL:       args.URL,
		Authorization: httpAuthConfig{
			Type:   args.AuthorizationType,
			Config: args.AuthorizationConf,
		},
		Headers:   args.Headers,
		Params:    args.Params,
		Body:      httpBody{Type: args.BodyType, Data: bodyData},
		SSLVerify: !args.SSLVerifyDisabled,
		Timeout: httpTimeout{
			MaxConnectTimeout: args.MaxConnectTimeout,
			MaxReadTimeout:    args.MaxReadTimeout,
			MaxWriteTimeout:   args.MaxWriteTimeout,
		},
		RetryConfig: httpRetryConfig{
			RetryEnabled:  !args.RetryDisabled,
			MaxRetries:    args.MaxRetries,
			RetryInterval: args.RetryInterval,
		},
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 83)
	node.outputs = []OutputVariable{
		{Variable: "body", Label: "Response body", Type: "string", Description: "Body of the HTTP response"},
		{Variable: "status_code", Label: "Status code", Type: "number", Description: "Status code of the HTTP response"},
		{Variable: "headers", Label: "Response headers", Type: "object", Description: "Headers of the HTTP response"},
		{Variable: "files", Label: "Files", Type: "Array[File]", Description: "Files extracted from the response"},
	}
	return singleNodeResult(node,
		fmt.Sprintf("Created HTTP request node %q: %s %s", args.Title, method, args.URL)), nil
}

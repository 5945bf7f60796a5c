//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package dify

import "fmt"

// LogicalOperators relate multiple conditions inside one case.
var LogicalOperators = []string{"and", "or"}

// ComparisonOperators are the supported condition comparisons.
var ComparisonOperators = []string{
	"contains",
	"not contains",
	"start with",
	"end with",
	"is",
	"is not",
	"empty",
	"not empty",
}

type ifElseCondition struct {
	ID                 string   `json:"id"`
	VariableSelector   []string `json:"variable_selector"`
	ComparisonOperator string   `json:"comparison_operator"`
	Value              any      `json:"value"`
	VarType            string   `json:"varType"`
}

type ifElseCase struct {
	ID              string            `json:"id"`
	CaseID          string            `json:"case_id"`
	LogicalOperator string            `json:"logical_operator"`
	Conditions      []ifElseCondition `json:"conditions"`
}

type ifElseNodeData struct {
	Type     NodeKind     `json:"type"`
	Title    string       `json:"title"`
	Desc     string       `json:"desc"`
	Selected bool         `json:"selected"`
	Cases    []ifElseCase `json:"cases"`
}

// ConditionArg is a single comparison inside a branch case.
type ConditionArg struct {
	Variable           string `json:"variable" description:"Value under test, e.g. {{#sys.query#}}."`
	ComparisonOperator string `json:"comparison_operator" description:"One of contains, not contains, start with, end with, is, is not, empty, not empty."`
	Value              any    `json:"value,omitempty" description:"Value to compare against. Ignored by empty and not empty."`
	VarType            string `json:"var_type,omitempty" description:"Type of the tested value, defaults to string."`
}

// CaseArg is one branch of an if-else node. Cases are evaluated in order,
// the first matching one wins.
type CaseArg struct {
	ID              string         `json:"id" description:"Identifier of the case, used as the outgoing edge handle (e.g. \"is_about_weather\")."`
	LogicalOperator string         `json:"logical_operator,omitempty" description:"Relation between the case's conditions, and or or. Defaults to and."`
	Conditions      []ConditionArg `json:"conditions" description:"Comparisons inside the case."`
}

// IfElseNodeArgs configures a conditional branch node.
type IfElseNodeArgs struct {
	NodeID string    `json:"node_id" description:"Unique identifier of the node (e.g. \"if_else_1\")."`
	XPos   int       `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos   int       `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	Cases  []CaseArg `json:"cases" description:"Branch cases in evaluation order. The fallthrough else branch is implicit."`
	Title  string    `json:"title,omitempty" description:"Display title of the node. Defaults to \"If/Else\"."`
	Desc   string    `json:"desc,omitempty" description:"Optional node description."`
}

// BuildIfElseNode creates a conditional branch node that routes the
// workflow by the first matching case.
func BuildIfElseNode(args IfElseNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindIfElse, "node_id", "is required")
	}
	if len(args.Cases) == 0 {
		return nil, invalidConfig(KindIfElse, "cases", "must contain at least one case")
	}
	if args.Title == "" {
		args.Title = "If/Else"
	}
	cases := make([]ifElseCase, 0, len(args.Cases))
	for i, caseArg := range args.Cases {
		logicalOperator := caseArg.LogicalOperator
		if logicalOperator == "" {
			logicalOperator = "and"
		}
		if err := checkOption("logical operator", logicalOperator, LogicalOperators); err != nil {
			return nil, err
		}
		conditions := make([]ifElseCondition, 0, len(caseArg.Conditions))
		for j, cond := range caseArg.Conditions {
			if err := checkOption("comparison operator", cond.ComparisonOperator, ComparisonOperators); err != nil {
				return nil, err
			}
			varType := cond.VarType
			if varType == "" {
				varType = "string"
			}
			value := cond.Value
			if value == nil {
				value = ""
			}
			conditions = append(conditions, ifElseCondition{
				ID:                 fmt.Sprintf("cond_%d", j),
				VariableSelector:   ParseVariable(cond.Variable),
				ComparisonOperator: cond.ComparisonOperator,
				Value:              value,
				VarType:            varType,
			})
		}
		caseID := caseArg.ID
		if caseID == "" {
			caseID = fmt.Sprintf("case_%d", i)
		}
		cases = append(cases, ifElseCase{
			ID:              caseID,
			CaseID:          caseID,
			LogicalOperator: logicalOperator,
			Conditions:      conditions,
		})
	}
	data := &ifElseNodeData{
		Type:  KindIfElse,
		Title: args.Title,
		Desc:  args.Desc,
		Cases: cases,
	}
	node := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 244, 150)
	return &BuildResult{
		Nodes: []*Node{node},
		Observation: fmt.Sprintf("Created conditional branch node %q with %d cases.",
			args.Title, len(cases)),
		Outputs: []string{},
	}, nil
}

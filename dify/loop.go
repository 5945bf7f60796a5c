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

type loopCondition struct {
	ID                 string   `json:"id"`
	VarType            string   `json:"varType"`
	VariableSelector   []string `json:"variable_selector"`
	ComparisonOperator string   `json:"comparison_operator"`
	Value              any      `json:"value"`
}

type loopVariable struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	VarType   string `json:"var_type"`
	ValueType string `json:"value_type"`
	Value     any    `json:"value"`
}

type loopNodeData struct {
	Type            NodeKind        `json:"type"`
	Title           string          `json:"title"`
	Desc            string          `json:"desc"`
	Selected        bool            `json:"selected"`
	StartNodeID     string          `json:"start_node_id"`
	BreakConditions []loopCondition `json:"break_conditions"`
	LoopCount       int             `json:"loop_count"`
	LogicalOperator string          `json:"logical_operator"`
	ErrorHandleMode string          `json:"error_handle_mode"`
	LoopVariables   []loopVariable  `json:"loop_variables"`
}

type loopStartNodeData struct {
	Type      NodeKind       `json:"type"`
	Title     string         `json:"title"`
	Desc      string         `json:"desc"`
	Variables []NodeVariable `json:"variables"`
	Selected  bool           `json:"selected"`
	IsInLoop  bool           `json:"isInLoop"`
}

// LoopVariableArg declares one loop variable.
type LoopVariableArg struct {
	ID        string `json:"id" description:"Identifier of the variable."`
	Label     string `json:"label" description:"Name of the variable inside the loop."`
	VarType   string `json:"var_type,omitempty" description:"Type of the variable such as string, number or boolean. Defaults to string."`
	ValueType string `json:"value_type,omitempty" description:"Either constant or variable. Defaults to constant."`
	Value     any    `json:"value,omitempty" description:"Initial value. For value_type variable, a reference string such as {{#sys.query#}}."`
}

// BreakConditionArg declares one loop exit condition.
type BreakConditionArg struct {
	ID                 string `json:"id" description:"Identifier of the condition."`
	VarType            string `json:"var_type,omitempty" description:"Type of the tested value, defaults to string."`
	Variable           string `json:"variable" description:"Value under test, e.g. {{#loop_1.counter#}}."`
	ComparisonOperator string `json:"comparison_operator" description:"One of contains, not contains, start with, end with, is, is not, empty, not empty."`
	Value              any    `json:"value,omitempty" description:"Value to compare against."`
}

// LoopNodeArgs configures a loop container node.
type LoopNodeArgs struct {
	NodeID          string              `json:"node_id" description:"Unique identifier of the node (e.g. \"loop_1\")."`
	XPos            int                 `json:"x_pos" description:"X coordinate of the node on the canvas."`
	YPos            int                 `json:"y_pos" description:"Y coordinate of the node on the canvas."`
	LoopVariables   []LoopVariableArg   `json:"loop_variables" description:"Variables carried across loop iterations."`
	BreakConditions []BreakConditionArg `json:"break_conditions,omitempty" description:"Conditions that exit the loop early."`
	LoopCount       int                 `json:"loop_count,omitempty" description:"Maximum number of iterations, defaults to 10."`
	LogicalOperator string              `json:"logical_operator,omitempty" description:"Relation between break conditions, and or or. Defaults to or."`
	ErrorHandleMode string              `json:"error_handle_mode,omitempty" description:"Either terminated or continue. Defaults to terminated."`
	Title           string              `json:"title,omitempty" description:"Display title of the node. Defaults to \"Loop\"."`
	Desc            string              `json:"desc,omitempty" description:"Optional node description."`
}

var errorHandleModes = []string{"terminated", "continue"}

// BuildLoopNode creates a loop container plus its mandatory start child.
// The child carries the "<loop id>start" id the canvas expects and is
// nested inside the parent via parentId.
func BuildLoopNode(args LoopNodeArgs) (*BuildResult, error) {
	if args.NodeID == "" {
		return nil, invalidConfig(KindLoop, "node_id", "is required")
	}
	if args.Title == "" {
		args.Title = "Loop"
	}
	if args.LoopCount == 0 {
		args.LoopCount = 10
	}
	if args.LogicalOperator == "" {
		args.LogicalOperator = "or"
	}
	if err := checkOption("logical operator", args.LogicalOperator, LogicalOperators); err != nil {
		return nil, err
	}
	if args.ErrorHandleMode == "" {
		args.ErrorHandleMode = "terminated"
	}
	if err := checkOption("error handle mode", args.ErrorHandleMode, errorHandleModes); err != nil {
		return nil, err
	}

	loopVariables := make([]loopVariable, 0, len(args.LoopVariables))
	for _, v := range args.LoopVariables {
		varType := v.VarType
		if varType == "" {
			varType = "string"
		}
		valueType := v.ValueType
		if valueType == "" {
			valueType = "constant"
		}
		value := v.Value
		if valueType == "variable" {
			if ref, ok := value.(string); ok {
				value = ParseVariable(ref)
			}
		}
		loopVariables = append(loopVariables, loopVariable{
			ID:        v.ID,
			Label:     v.Label,
			VarType:   varType,
			ValueType: valueType,
			Value:     value,
		})
	}

	breakConditions := make([]loopCondition, 0, len(args.BreakConditions))
	for i, cond := range args.BreakConditions {
		if err := checkOption("comparison operator", cond.ComparisonOperator, ComparisonOperators); err != nil {
			return nil, err
		}
		id := cond.ID
		if id == "" {
			id = fmt.Sprintf("cond_%d", i)
		}
		varType := cond.VarType
		if varType == "" {
			varType = "string"
		}
		value := cond.Value
		if value == nil {
			value = ""
		}
		breakConditions = append(breakConditions, loopCondition{
			ID:                 id,
			VarType:            varType,
			VariableSelector:   ParseVariable(cond.Variable),
			ComparisonOperator: cond.ComparisonOperator,
			Value:              value,
		})
	}

	startNodeID := args.NodeID + "start"
	data := &loopNodeData{
		Type:            KindLoop,
		Title:           args.Title,
		Desc:            args.Desc,
		StartNodeID:     startNodeID,
		BreakConditions: breakConditions,
		LoopCount:       args.LoopCount,
		LogicalOperator: args.LogicalOperator,
		ErrorHandleMode: args.ErrorHandleMode,
		LoopVariables:   loopVariables,
	}
	loopNode := newNode(args.NodeID, data, Position{X: args.XPos, Y: args.YPos}, 388, 178)
	for _, v := range loopVariables {
		loopNode.outputs = append(loopNode.outputs, OutputVariable{
			Variable:    v.Label,
			Label:       fmt.Sprintf("Loop variable %s", v.Label),
			Type:        v.VarType,
			Description: fmt.Sprintf("The loop-carried variable %s", v.Label),
		})
	}

	// The start child sits at a fixed offset inside the parent.
	startData := &loopStartNodeData{
		Type:      KindLoopStart,
		Variables: []NodeVariable{},
		IsInLoop:  true,
	}
	startNode := newNode(startNodeID, startData, Position{X: 24, Y: 68}, 44, 48)
	startNode.Type = nodeTypeLoopStart
	startNode.ParentID = args.NodeID
	notSelectable := false
	startNode.Selectable = &notSelectable
	startNode.Draggable = false
	startNode.ZIndex = 1002
	startNode.PositionAbsolute = Position{X: args.XPos + 24, Y: args.YPos + 68}

	return &BuildResult{
		Nodes: []*Node{loopNode, startNode},
		Observation: fmt.Sprintf(
			"Created loop node %q and its start child with %d loop variables and %d break conditions.",
			args.Title, len(loopVariables), len(breakConditions)),
		Outputs: loopNode.OutputReferences(),
	}, nil
}

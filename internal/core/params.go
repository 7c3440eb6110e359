package core

import (
	"log/slog"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeString denotes free-form parameters such as file paths.
	ParamTypeString ParamType = "string"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// Parameter describes a single effective setting of a run.
type Parameter struct {
	Key   string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the settings a run was started with.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Merge appends the groups of other after the groups of s.
func (s ParameterSnapshot) Merge(other ParameterSnapshot) ParameterSnapshot {
	groups := make([]ParameterGroup, 0, len(s.Groups)+len(other.Groups))
	groups = append(groups, s.Groups...)
	groups = append(groups, other.Groups...)
	return ParameterSnapshot{Groups: groups}
}

// Attr converts the parameter to a typed slog attribute. Values that do not
// parse as their declared type are logged as strings.
func (p Parameter) Attr() slog.Attr {
	switch p.Type {
	case ParamTypeInt:
		if v, err := strconv.ParseInt(p.Value, 10, 64); err == nil {
			return slog.Int64(p.Key, v)
		}
	case ParamTypeBool:
		if v, err := strconv.ParseBool(p.Value); err == nil {
			return slog.Bool(p.Key, v)
		}
	}
	return slog.String(p.Key, p.Value)
}

// LogAttrs flattens the snapshot into one slog group per parameter group.
func (s ParameterSnapshot) LogAttrs() []any {
	attrs := make([]any, 0, len(s.Groups))
	for _, g := range s.Groups {
		inner := make([]any, 0, len(g.Params))
		for _, p := range g.Params {
			inner = append(inner, p.Attr())
		}
		attrs = append(attrs, slog.Group(g.Name, inner...))
	}
	return attrs
}

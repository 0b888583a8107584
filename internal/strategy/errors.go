package strategy

import "fmt"

// MissingOptionError indicates a strategy was selected without a parameter
// it requires.
type MissingOptionError struct {
	Strategy string
	Option   string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("strategy %q requires --%s", e.Strategy, e.Option)
}

// TargetExistsError indicates the resolved target path is already occupied.
// Existing targets are never merged into or overwritten.
type TargetExistsError struct {
	Path string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("target already exists: %s", e.Path)
}

// CloneError wraps a failed version-control operation with the strategy
// that issued it.
type CloneError struct {
	Strategy string
	Err      error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("strategy %q: clone failed: %v", e.Strategy, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// UnknownStrategyError indicates a strategy name outside the enumerated set.
// It is always a configuration error and never silently defaulted.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy: %q", e.Name)
}

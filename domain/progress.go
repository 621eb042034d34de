package domain

import "context"

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress output is shown
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// ExecutableTask is a unit of work for the parallel executor
type ExecutableTask interface {
	// Name identifies the task in error reports
	Name() string

	// Execute runs the task
	Execute(ctx context.Context) error
}

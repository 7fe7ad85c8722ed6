package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStorage  = fmt.Errorf("storage failure")
	ErrDatabase = fmt.Errorf("database failure")

	// Task errors
	ErrNoTasks           = fmt.Errorf("no tasks found")
	ErrTaskNotFound      = fmt.Errorf("task not found")
	ErrInvalidTransition = fmt.Errorf("invalid status transition")

	// Input validation errors
	ErrUsage           = fmt.Errorf("invalid usage")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrMaterialNotFound is returned when a material is not found
	ErrMaterialNotFound = errors.New("material not found")

	// ErrQuestNotFound is returned when a quest is not found
	ErrQuestNotFound = errors.New("quest not found")

	// ErrQuestLineNotFound is returned when a quest line is not found
	ErrQuestLineNotFound = errors.New("quest line not found")
)

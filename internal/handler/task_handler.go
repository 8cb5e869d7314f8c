package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"questboard/internal/model"
	"questboard/internal/repository"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// TaskCreateRequest is the payload for creating a task
type TaskCreateRequest struct {
	Title        string  `json:"title" binding:"required,min=1"`
	Description  *string `json:"description"`
	Priority     string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssignedToID *string `json:"assignedToId"`
	QuestID      *string `json:"questId"`
	QuestName    *string `json:"questName"`
}

// TaskUpdateRequest is a partial update; only supplied fields are written
type TaskUpdateRequest struct {
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED BLOCKED"`
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// TaskResponse is a task with its computed material completion percentage
type TaskResponse struct {
	model.Task
	MaterialProgress int `json:"materialProgress"`
}

// GetAll returns all tasks, newest first, with assignee and materials joined
func (h *TaskHandler) GetAll(c *gin.Context) {
	tasks, err := h.taskRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, TaskResponse{
			Task:             task,
			MaterialProgress: MaterialProgress(task.Materials),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Create creates a new task
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       model.StatusTodo,
		Priority:     priority,
		AssignedToID: req.AssignedToID,
		QuestID:      req.QuestID,
		QuestName:    req.QuestName,
	}
	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}

	if len(updates) > 0 {
		if err := h.taskRepo.UpdateFields(c.Request.Context(), id, updates); err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task and its materials, returning the deleted task
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"questboard/internal/model"
	"questboard/internal/repository"
)

type MaterialHandler struct {
	materialRepo repository.MaterialRepositoryInterface
	taskRepo     repository.TaskRepositoryInterface
}

func NewMaterialHandler(
	materialRepo repository.MaterialRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
) *MaterialHandler {
	return &MaterialHandler{
		materialRepo: materialRepo,
		taskRepo:     taskRepo,
	}
}

// MaterialCreateRequest is the payload for adding a material to a task
type MaterialCreateRequest struct {
	Name     string  `json:"name" binding:"required,min=1"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Unit     *string `json:"unit"`
	ItemID   *string `json:"itemId"`
	NBTData  *string `json:"nbtData"`
}

// MaterialUpdateRequest is a partial update; only supplied fields are
// written. Obtained may exceed the required quantity, that is valid state.
type MaterialUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Quantity *int    `json:"quantity" binding:"omitempty,gt=0"`
	Obtained *int    `json:"obtained" binding:"omitempty,gte=0"`
	Unit     *string `json:"unit"`
	ItemID   *string `json:"itemId"`
	NBTData  *string `json:"nbtData"`
}

// MaterialProgress is the task's material completion percentage:
// sum(obtained) / sum(quantity) * 100, 0 for a task with no materials.
// Over-collected materials can push it past 100.
func MaterialProgress(materials []model.Material) int {
	var required, obtained int
	for _, m := range materials {
		required += m.Quantity
		obtained += m.Obtained
	}
	if required == 0 {
		return 0
	}
	return int(math.Round(float64(obtained) / float64(required) * 100))
}

// AddToTask creates a material on a task's checklist
func (h *MaterialHandler) AddToTask(c *gin.Context) {
	taskID := c.Param("id")

	var req MaterialCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.taskRepo.GetByID(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	material := &model.Material{
		TaskID:   taskID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		ItemID:   req.ItemID,
		NBTData:  req.NBTData,
	}
	if err := h.materialRepo.Create(c.Request.Context(), material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create material"})
		return
	}

	c.JSON(http.StatusCreated, material)
}

// GetByTask returns the materials of a task, oldest first
func (h *MaterialHandler) GetByTask(c *gin.Context) {
	materials, err := h.materialRepo.GetByTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// Update applies a partial update to a material
func (h *MaterialHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req MaterialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Obtained != nil {
		updates["obtained"] = *req.Obtained
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.ItemID != nil {
		updates["item_id"] = *req.ItemID
	}
	if req.NBTData != nil {
		updates["nbt_data"] = *req.NBTData
	}

	if len(updates) > 0 {
		if err := h.materialRepo.UpdateFields(c.Request.Context(), id, updates); err != nil {
			if errors.Is(err, repository.ErrMaterialNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update material"})
			return
		}
	}

	material, err := h.materialRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve material"})
		return
	}

	c.JSON(http.StatusOK, material)
}

// Delete removes a material, returning the deleted row
func (h *MaterialHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	material, err := h.materialRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve material"})
		return
	}

	if err := h.materialRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}

	c.JSON(http.StatusOK, material)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"questboard/internal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserHandler(userRepo repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetOrCreateRequest identifies a player by their Minecraft UUID
type GetOrCreateRequest struct {
	MinecraftUUID string `json:"minecraftUUID" binding:"required"`
	Username      string `json:"username" binding:"required"`
}

// GetOrCreate upserts a user by Minecraft UUID, refreshing the username
func (h *UserHandler) GetOrCreate(c *gin.Context) {
	var req GetOrCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userRepo.Upsert(c.Request.Context(), req.MinecraftUUID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetAll returns every user with task and quest-progress counts
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAllWithCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Delete removes a user. Tasks assigned to them survive with the assignee
// cleared; their progress rows are removed.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"questboard/internal/model"
	"questboard/internal/repository"
)

type QuestLineHandler struct {
	questLineRepo repository.QuestLineRepositoryInterface
}

func NewQuestLineHandler(questLineRepo repository.QuestLineRepositoryInterface) *QuestLineHandler {
	return &QuestLineHandler{questLineRepo: questLineRepo}
}

// SyncQuestLineRequest is the payload the Minecraft mod pushes for quest
// line definitions
type SyncQuestLineRequest struct {
	QuestLineID string  `json:"questLineId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// Sync upserts a quest line by its natural key. Name and display order are
// always replaced; the description is replaced only when the event carries
// one.
func (h *QuestLineHandler) Sync(c *gin.Context) {
	var req SyncQuestLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	}
	supplied := map[string]interface{}{}
	if req.Description != nil {
		supplied["description"] = req.Description
	}

	line, err := h.questLineRepo.Upsert(c.Request.Context(), &model.QuestLine{
		QuestLineID: req.QuestLineID,
		Name:        req.Name,
		Description: req.Description,
		Order:       order,
	}, supplied)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync quest line"})
		return
	}

	c.JSON(http.StatusOK, line)
}

// GetAll returns every quest line in display order with quests and all
// players' progress
func (h *QuestLineHandler) GetAll(c *gin.Context) {
	lines, err := h.questLineRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quest lines"})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GetByID returns one quest line by row id with quests and all players'
// progress
func (h *QuestLineHandler) GetByID(c *gin.Context) {
	line, err := h.questLineRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuestLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quest line not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quest line"})
		return
	}
	c.JSON(http.StatusOK, line)
}

// GetWithProgress returns every quest line in display order, each quest
// carrying only the given user's progress
func (h *QuestLineHandler) GetWithProgress(c *gin.Context) {
	lines, err := h.questLineRepo.GetWithProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quest lines"})
		return
	}
	c.JSON(http.StatusOK, lines)
}

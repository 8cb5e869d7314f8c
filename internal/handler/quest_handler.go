package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"questboard/internal/model"
	"questboard/internal/repository"
)

type QuestHandler struct {
	questRepo    repository.QuestRepositoryInterface
	progressRepo repository.QuestProgressRepositoryInterface
	userRepo     repository.UserRepositoryInterface
}

func NewQuestHandler(
	questRepo repository.QuestRepositoryInterface,
	progressRepo repository.QuestProgressRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *QuestHandler {
	return &QuestHandler{
		questRepo:    questRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

// SyncQuestRequest is the payload the Minecraft mod pushes on quest events.
// Only userId, questId, questName and completed are guaranteed; everything
// else is opportunistic.
type SyncQuestRequest struct {
	UserID        string          `json:"userId" binding:"required"`
	QuestID       string          `json:"questId" binding:"required"`
	QuestName     string          `json:"questName" binding:"required"`
	QuestLine     *string         `json:"questLine"`
	Completed     bool            `json:"completed"`
	Unlocked      *bool           `json:"unlocked"`
	Description   *string         `json:"description"`
	TaskLogic     *string         `json:"taskLogic"`
	Tasks         json.RawMessage `json:"tasks"`
	Rewards       json.RawMessage `json:"rewards"`
	Prerequisites []string        `json:"prerequisites"`
	QuestLineID   *string         `json:"questLineId"`
}

// SyncQuestResponse carries both records the sync touched
type SyncQuestResponse struct {
	Quest    *model.Quest         `json:"quest"`
	Progress *model.QuestProgress `json:"progress"`
}

// QuestStatsResponse is one user's quest completion summary
type QuestStatsResponse struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Unlocked   int64 `json:"unlocked"`
	Locked     int64 `json:"locked"`
	Percentage int   `json:"percentage"`
}

// ComputeQuestStats derives the locked count and completion percentage.
// Locked is not clamped: inconsistent progress data (more completed rows
// than quest definitions) shows up as a negative number rather than being
// hidden.
func ComputeQuestStats(total, completed, unlocked int64) QuestStatsResponse {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return QuestStatsResponse{
		Total:      total,
		Completed:  completed,
		Unlocked:   unlocked,
		Locked:     total - completed - unlocked,
		Percentage: percentage,
	}
}

// SyncQuest ingests one quest fact from the game client. Steps run in fixed
// order because the progress row has foreign keys into both users and
// quests: ensure the user exists, upsert the quest definition, upsert the
// user's progress. There is no cross-step transaction; a failure in the
// middle is repaired by the next retry since every step is idempotent.
// Optional metadata is written only when the payload carries it: a bare
// completion event must not wipe the description or task payloads an
// earlier full sync stored.
func (h *QuestHandler) SyncQuest(c *gin.Context) {
	var req SyncQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.userRepo.EnsureExists(c.Request.Context(), req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ensure user"})
		return
	}

	taskLogic := "AND"
	if req.TaskLogic != nil {
		taskLogic = *req.TaskLogic
	}
	prerequisites := req.Prerequisites
	if prerequisites == nil {
		prerequisites = []string{}
	}

	questSupplied := map[string]interface{}{}
	if req.Description != nil {
		questSupplied["description"] = req.Description
	}
	if req.Tasks != nil {
		questSupplied["tasks"] = datatypes.JSON(req.Tasks)
	}
	if req.Rewards != nil {
		questSupplied["rewards"] = datatypes.JSON(req.Rewards)
	}

	quest, err := h.questRepo.Upsert(c.Request.Context(), &model.Quest{
		QuestID:       req.QuestID,
		Name:          req.QuestName,
		Description:   req.Description,
		QuestLineID:   req.QuestLineID,
		TaskLogic:     taskLogic,
		Tasks:         datatypes.JSON(req.Tasks),
		Rewards:       datatypes.JSON(req.Rewards),
		Prerequisites: datatypes.NewJSONSlice(prerequisites),
	}, questSupplied)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync quest"})
		return
	}

	unlocked := true
	if req.Unlocked != nil {
		unlocked = *req.Unlocked
	}
	var completedAt *time.Time
	if req.Completed {
		now := time.Now()
		completedAt = &now
	}

	progressSupplied := map[string]interface{}{}
	if req.QuestLine != nil {
		progressSupplied["quest_line"] = req.QuestLine
	}

	progress, err := h.progressRepo.Upsert(c.Request.Context(), &model.QuestProgress{
		UserID:      req.UserID,
		QuestID:     req.QuestID,
		QuestName:   req.QuestName,
		QuestLine:   req.QuestLine,
		Completed:   req.Completed,
		Unlocked:    unlocked,
		CompletedAt: completedAt,
	}, progressSupplied)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync quest progress"})
		return
	}

	c.JSON(http.StatusOK, SyncQuestResponse{Quest: quest, Progress: progress})
}

// GetStats returns one user's quest completion summary
func (h *QuestHandler) GetStats(c *gin.Context) {
	userID := c.Param("id")

	total, err := h.questRepo.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count quests"})
		return
	}
	completed, err := h.progressRepo.CountCompleted(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count completed quests"})
		return
	}
	unlocked, err := h.progressRepo.CountUnlocked(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unlocked quests"})
		return
	}

	c.JSON(http.StatusOK, ComputeQuestStats(total, completed, unlocked))
}

// GetAll returns every quest definition with line and all progress rows
func (h *QuestHandler) GetAll(c *gin.Context) {
	quests, err := h.questRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quests"})
		return
	}
	c.JSON(http.StatusOK, quests)
}

// GetByID returns one quest by its natural key
func (h *QuestHandler) GetByID(c *gin.Context) {
	quest, err := h.questRepo.GetByQuestID(c.Request.Context(), c.Param("quest_id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quest"})
		return
	}
	c.JSON(http.StatusOK, quest)
}

// GetByLine returns the quests of one quest line by its natural key
func (h *QuestHandler) GetByLine(c *gin.Context) {
	quests, err := h.questRepo.GetByLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quests"})
		return
	}
	c.JSON(http.StatusOK, quests)
}

// GetProgress returns all progress rows of one user
func (h *QuestHandler) GetProgress(c *gin.Context) {
	rows, err := h.progressRepo.GetByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve progress"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"questboard/internal/handler"
	"questboard/internal/model"
	"questboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockQuestLineRepository struct {
	mock.Mock
}

var _ repository.QuestLineRepositoryInterface = (*MockQuestLineRepository)(nil)

func (m *MockQuestLineRepository) Upsert(ctx context.Context, line *model.QuestLine, supplied map[string]interface{}) (*model.QuestLine, error) {
	args := m.Called(ctx, line, supplied)
	l := args.Get(0)
	if l == nil {
		return nil, args.Error(1)
	}
	return l.(*model.QuestLine), args.Error(1)
}

func (m *MockQuestLineRepository) GetByID(ctx context.Context, id string) (*model.QuestLine, error) {
	args := m.Called(ctx, id)
	l := args.Get(0)
	if l == nil {
		return nil, args.Error(1)
	}
	return l.(*model.QuestLine), args.Error(1)
}

func (m *MockQuestLineRepository) GetAll(ctx context.Context) ([]model.QuestLine, error) {
	args := m.Called(ctx)
	lines := args.Get(0)
	if lines == nil {
		return nil, args.Error(1)
	}
	return lines.([]model.QuestLine), args.Error(1)
}

func (m *MockQuestLineRepository) GetWithProgress(ctx context.Context, userID string) ([]model.QuestLine, error) {
	args := m.Called(ctx, userID)
	lines := args.Get(0)
	if lines == nil {
		return nil, args.Error(1)
	}
	return lines.([]model.QuestLine), args.Error(1)
}

func setupQuestLineTest() (*gin.Engine, *MockQuestLineRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockQuestLineRepository)
	questLineHandler := handler.NewQuestLineHandler(mockRepo)

	r.POST("/sync/questline", questLineHandler.Sync)
	r.GET("/questlines", questLineHandler.GetAll)
	r.GET("/questlines/:id", questLineHandler.GetByID)
	r.GET("/users/:id/questlines", questLineHandler.GetWithProgress)

	return r, mockRepo
}

func TestQuestLineSync_FullReplace(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	var gotLine *model.QuestLine
	var gotSupplied map[string]interface{}
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.QuestLine"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotLine = args.Get(1).(*model.QuestLine)
			gotSupplied = args.Get(2).(map[string]interface{})
		}).
		Return(&model.QuestLine{ID: "row1", QuestLineID: "ql1", Name: "Getting Started", Order: 2}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"questLineId": "ql1",
		"name":        "Getting Started",
		"description": "The first chapter",
		"order":       2,
	})
	req, _ := http.NewRequest("POST", "/sync/questline", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ql1", gotLine.QuestLineID)
	assert.Equal(t, "Getting Started", gotLine.Name)
	assert.Equal(t, 2, gotLine.Order)
	assert.NotNil(t, gotLine.Description)
	assert.Contains(t, gotSupplied, "description")

	var line model.QuestLine
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &line))
	assert.Equal(t, "ql1", line.QuestLineID)
	mockRepo.AssertExpectations(t)
}

func TestQuestLineSync_OrderDefaultsToZero(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	var gotLine *model.QuestLine
	var gotSupplied map[string]interface{}
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.QuestLine"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotLine = args.Get(1).(*model.QuestLine)
			gotSupplied = args.Get(2).(map[string]interface{})
		}).
		Return(&model.QuestLine{QuestLineID: "ql1", Name: "Getting Started"}, nil)

	req, _ := http.NewRequest("POST", "/sync/questline",
		bytes.NewBufferString(`{"questLineId":"ql1","name":"Getting Started"}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: order falls back to zero, but the omitted description stays
	// out of the update set so a stored one survives the re-sync
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, gotLine.Order)
	assert.Nil(t, gotLine.Description)
	assert.NotContains(t, gotSupplied, "description")
}

func TestQuestLineSync_MissingName(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	req, _ := http.NewRequest("POST", "/sync/questline", bytes.NewBufferString(`{"questLineId":"ql1"}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestQuestLineGetWithProgress_OrderedAndFiltered(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	// Lines come back in display order; each quest carries only p1's
	// progress rows
	mockRepo.On("GetWithProgress", mock.Anything, "p1").Return([]model.QuestLine{
		{
			QuestLineID: "ql1",
			Name:        "Getting Started",
			Order:       0,
			Quests: []model.Quest{
				{
					QuestID: "q1",
					Name:    "First Steps",
					Progress: []model.QuestProgress{
						{UserID: "p1", QuestID: "q1", Completed: true, Unlocked: true},
					},
				},
			},
		},
		{QuestLineID: "ql2", Name: "Automation", Order: 1},
	}, nil)

	req, _ := http.NewRequest("GET", "/users/p1/questlines", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var lines []model.QuestLine
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &lines))
	assert.Len(t, lines, 2)
	assert.Equal(t, "ql1", lines[0].QuestLineID)
	assert.Equal(t, "ql2", lines[1].QuestLineID)
	assert.Len(t, lines[0].Quests, 1)
	assert.Len(t, lines[0].Quests[0].Progress, 1)
	assert.Equal(t, "p1", lines[0].Quests[0].Progress[0].UserID)

	mockRepo.AssertExpectations(t)
}

func TestQuestLineGetByID(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	mockRepo.On("GetByID", mock.Anything, "row1").Return(&model.QuestLine{
		ID:          "row1",
		QuestLineID: "ql1",
		Name:        "Getting Started",
		Quests: []model.Quest{
			{
				QuestID: "q1",
				Name:    "First Steps",
				Progress: []model.QuestProgress{
					{UserID: "p1", QuestID: "q1", Completed: true, Unlocked: true},
				},
			},
		},
	}, nil)

	req, _ := http.NewRequest("GET", "/questlines/row1", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var line model.QuestLine
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &line))
	assert.Equal(t, "ql1", line.QuestLineID)
	assert.Len(t, line.Quests, 1)
	assert.Len(t, line.Quests[0].Progress, 1)
}

func TestQuestLineGetByID_NotFound(t *testing.T) {
	// Arrange
	router, mockRepo := setupQuestLineTest()

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrQuestLineNotFound)

	req, _ := http.NewRequest("GET", "/questlines/missing", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

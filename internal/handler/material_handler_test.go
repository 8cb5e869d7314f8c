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

type MockMaterialRepository struct {
	mock.Mock
}

var _ repository.MaterialRepositoryInterface = (*MockMaterialRepository)(nil)

func (m *MockMaterialRepository) Create(ctx context.Context, material *model.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id string) (*model.Material, error) {
	args := m.Called(ctx, id)
	material := args.Get(0)
	if material == nil {
		return nil, args.Error(1)
	}
	return material.(*model.Material), args.Error(1)
}

func (m *MockMaterialRepository) GetByTask(ctx context.Context, taskID string) ([]model.Material, error) {
	args := m.Called(ctx, taskID)
	materials := args.Get(0)
	if materials == nil {
		return nil, args.Error(1)
	}
	return materials.([]model.Material), args.Error(1)
}

func (m *MockMaterialRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupMaterialTest() (*gin.Engine, *MockMaterialRepository, *MockTaskRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	materialRepo := new(MockMaterialRepository)
	taskRepo := new(MockTaskRepository)
	materialHandler := handler.NewMaterialHandler(materialRepo, taskRepo)

	r.POST("/tasks/:id/materials", materialHandler.AddToTask)
	r.GET("/tasks/:id/materials", materialHandler.GetByTask)
	r.PUT("/materials/:id", materialHandler.Update)
	r.DELETE("/materials/:id", materialHandler.Delete)

	return r, materialRepo, taskRepo
}

func TestMaterialAddToTask_Success(t *testing.T) {
	// Arrange
	router, materialRepo, taskRepo := setupMaterialTest()

	taskRepo.On("GetByID", mock.Anything, "t1").Return(&model.Task{ID: "t1"}, nil)

	var gotMaterial *model.Material
	materialRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Material")).
		Run(func(args mock.Arguments) { gotMaterial = args.Get(1).(*model.Material) }).
		Return(nil)

	req, _ := http.NewRequest("POST", "/tasks/t1/materials",
		bytes.NewBufferString(`{"name":"Iron Ingot","quantity":64}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "t1", gotMaterial.TaskID)
	assert.Equal(t, "Iron Ingot", gotMaterial.Name)
	assert.Equal(t, 64, gotMaterial.Quantity)
	assert.Equal(t, 0, gotMaterial.Obtained)
	materialRepo.AssertExpectations(t)
}

func TestMaterialAddToTask_NonPositiveQuantity(t *testing.T) {
	// Arrange
	router, materialRepo, taskRepo := setupMaterialTest()

	req, _ := http.NewRequest("POST", "/tasks/t1/materials",
		bytes.NewBufferString(`{"name":"Iron Ingot","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: rejected before the store is touched
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	taskRepo.AssertNotCalled(t, "GetByID")
	materialRepo.AssertNotCalled(t, "Create")
}

func TestMaterialAddToTask_UnknownTask(t *testing.T) {
	// Arrange
	router, materialRepo, taskRepo := setupMaterialTest()

	taskRepo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrTaskNotFound)

	req, _ := http.NewRequest("POST", "/tasks/missing/materials",
		bytes.NewBufferString(`{"name":"Iron Ingot","quantity":64}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	materialRepo.AssertNotCalled(t, "Create")
}

func TestMaterialUpdate_ObtainedReachesTarget(t *testing.T) {
	// Arrange
	router, materialRepo, _ := setupMaterialTest()

	var gotUpdates map[string]interface{}
	materialRepo.On("UpdateFields", mock.Anything, "m1", mock.Anything).
		Run(func(args mock.Arguments) { gotUpdates = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	updated := &model.Material{ID: "m1", TaskID: "t1", Name: "Iron Ingot", Quantity: 64, Obtained: 64}
	materialRepo.On("GetByID", mock.Anything, "m1").Return(updated, nil)

	// Act
	req, _ := http.NewRequest("PUT", "/materials/m1", bytes.NewBufferString(`{"obtained":64}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: only obtained was written, and the task now reports 100%
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, map[string]interface{}{"obtained": 64}, gotUpdates)
	assert.Equal(t, 100, handler.MaterialProgress([]model.Material{*updated}))
}

func TestMaterialUpdate_ObtainedMayExceedQuantity(t *testing.T) {
	// Arrange
	router, materialRepo, _ := setupMaterialTest()

	materialRepo.On("UpdateFields", mock.Anything, "m1", mock.Anything).Return(nil)
	materialRepo.On("GetByID", mock.Anything, "m1").
		Return(&model.Material{ID: "m1", Quantity: 64, Obtained: 128}, nil)

	// Act: over-collection is accepted, not clamped
	req, _ := http.NewRequest("PUT", "/materials/m1", bytes.NewBufferString(`{"obtained":128}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var material model.Material
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &material))
	assert.Equal(t, 128, material.Obtained)
}

func TestMaterialUpdate_NegativeObtained(t *testing.T) {
	// Arrange
	router, materialRepo, _ := setupMaterialTest()

	req, _ := http.NewRequest("PUT", "/materials/m1", bytes.NewBufferString(`{"obtained":-1}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	materialRepo.AssertNotCalled(t, "UpdateFields")
}

func TestMaterialProgress(t *testing.T) {
	tests := []struct {
		name      string
		materials []model.Material
		want      int
	}{
		{"no materials", nil, 0},
		{"nothing obtained", []model.Material{{Quantity: 64}}, 0},
		{"complete", []model.Material{{Quantity: 64, Obtained: 64}}, 100},
		{"half of total", []model.Material{
			{Quantity: 32, Obtained: 32},
			{Quantity: 32, Obtained: 0},
		}, 50},
		{"rounded", []model.Material{{Quantity: 3, Obtained: 1}}, 33},
		{"over-collected exceeds 100", []model.Material{{Quantity: 64, Obtained: 128}}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handler.MaterialProgress(tt.materials))
		})
	}
}

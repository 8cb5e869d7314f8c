package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questboard/internal/model"
)

// UserWithCounts is a user row with its task and quest-progress counts, as
// shown on the team page.
type UserWithCounts struct {
	model.User
	TaskCount     int64 `json:"taskCount"`
	ProgressCount int64 `json:"progressCount"`
}

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Upsert(ctx context.Context, minecraftUUID, username string) (*model.User, error)
	EnsureExists(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAllWithCounts(ctx context.Context) ([]UserWithCounts, error)
	Delete(ctx context.Context, id string) error
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user or, when the minecraftUUID is already known,
// updates the username in place. A single INSERT ... ON CONFLICT statement,
// so two clients racing on the same player cannot duplicate it.
func (r *UserRepository) Upsert(ctx context.Context, minecraftUUID, username string) (*model.User, error) {
	user := &model.User{
		MinecraftUUID: minecraftUUID,
		Username:      username,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "minecraft_uuid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"username": username}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row's id, not the discarded
	// candidate's.
	var out model.User
	if err := r.db.WithContext(ctx).First(&out, "minecraft_uuid = ?", minecraftUUID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// EnsureExists inserts a placeholder user for an unknown id pushed by the
// game client, so quest-progress foreign keys never fail. The reserved
// "system" identity maps to the zero UUID. Conditional insert, no
// read-then-write race.
func (r *UserRepository) EnsureExists(ctx context.Context, id string) error {
	minecraftUUID := id
	username := "Unknown"
	if id == model.SystemUserID {
		minecraftUUID = model.SystemUserUUID
		username = model.SystemUsername
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&model.User{
		ID:            id,
		MinecraftUUID: minecraftUUID,
		Username:      username,
	}).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllWithCounts retrieves every user together with how many tasks are
// assigned to them and how many quest-progress rows they have.
func (r *UserRepository) GetAllWithCounts(ctx context.Context) ([]UserWithCounts, error) {
	var users []UserWithCounts
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select(`users.*,
			(SELECT count(*) FROM tasks WHERE tasks.assigned_to_id = users.id) AS task_count,
			(SELECT count(*) FROM quest_progress WHERE quest_progress.user_id = users.id) AS progress_count`).
		Order("created_at").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user. Their tasks survive with the assignee cleared;
// their quest-progress rows go with them.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("assigned_to_id = ?", id).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.QuestProgress{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inspector-chingum/internal/model"
)

// GroupRepository handles get-or-create and full-record saves for groups.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetOrCreate finds a group by chat id, creating the record with default
// settings on the first event from that chat.
func (r *GroupRepository) GetOrCreate(ctx context.Context, chatID int64) (*model.Group, error) {
	var group model.Group
	db := r.db.WithContext(ctx)
	err := db.Where("chat_id = ?", chatID).First(&group).Error
	switch {
	case err == nil:
		return &group, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		group = model.Group{
			ChatID:         chatID,
			RoastEnabled:   true,
			KismatEnabled:  true,
			ConfessEnabled: true,
			ChallanEnabled: true,
		}
		if err := db.Create(&group).Error; err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}
		return &group, nil
	default:
		return nil, fmt.Errorf("find group: %w", err)
	}
}

// Save persists the full current state of the group record.
func (r *GroupRepository) Save(ctx context.Context, group *model.Group) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	return nil
}

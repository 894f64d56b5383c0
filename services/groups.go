package services

import (
	"context"

	"github.com/google/uuid"

	"thunderbuddy/models"
)

// GroupStore - персистенция групп
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id string) (*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, group *models.Group) error
}

// GroupService - скелетный CRUD групп
type GroupService struct {
	groups GroupStore
}

func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{groups: groups}
}

func (gs *GroupService) Create(ctx context.Context, name, members string) (*models.Group, error) {
	group := &models.Group{
		ID:      uuid.NewString(),
		Name:    name,
		Members: members,
	}
	if err := gs.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (gs *GroupService) Get(ctx context.Context, id string) (*models.Group, error) {
	group, err := gs.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (gs *GroupService) Update(ctx context.Context, id string, name, members *string) (*models.Group, error) {
	group, err := gs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		group.Name = *name
	}
	if members != nil {
		group.Members = *members
	}
	if err := gs.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (gs *GroupService) Delete(ctx context.Context, id string) error {
	group, err := gs.Get(ctx, id)
	if err != nil {
		return err
	}
	return gs.groups.Delete(ctx, group)
}

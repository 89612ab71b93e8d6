package itemService

import (
	"SimOCRBackend/internal/api/item"
	"SimOCRBackend/internal/entity"
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/response"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *itemService) ListItems(ctx context.Context, user entity.UserLoginData, page, pageSize int) (response.PagedData[item.ItemResponse], error) {
	requestID := contextPkg.GetRequestID(ctx)
	page, pageSize = item.NormalizePage(page, pageSize)

	repo, err := s.itemRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return response.PagedData[item.ItemResponse]{}, err
	}

	ownerID := user.ID
	if user.IsSuperuser {
		ownerID = ""
	}

	total, err := repo.Items.Count(ctx, ownerID)
	if err != nil {
		return response.PagedData[item.ItemResponse]{}, err
	}

	items, err := repo.Items.List(ctx, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return response.PagedData[item.ItemResponse]{}, err
	}

	res := make([]item.ItemResponse, 0, len(items))
	for _, it := range items {
		res = append(res, item.NewItemResponse(it))
	}

	return response.NewPagedData(res, total, page, pageSize), nil
}

func (s *itemService) GetItem(ctx context.Context, user entity.UserLoginData, id string) (entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.itemRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Item{}, err
	}

	it, err := repo.Items.GetByID(ctx, id)
	if err != nil {
		return entity.Item{}, err
	}

	if err := checkOwner(user, it); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"item_id":    id,
		}).Warn("Item access denied")
		return entity.Item{}, err
	}

	return it, nil
}

func (s *itemService) CreateItem(ctx context.Context, user entity.UserLoginData, req item.CreateItemRequest) (entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.itemRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Item{}, err
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return entity.Item{}, err
	}

	it := entity.Item{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Items.CreateItem(ctx, it); err != nil {
		return entity.Item{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"item_id":    it.ID,
		"owner_id":   it.OwnerID,
	}).Info("Item created")

	return it, nil
}

func (s *itemService) UpdateItem(ctx context.Context, user entity.UserLoginData, id string, req item.UpdateItemRequest) (entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.itemRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Item{}, err
	}
	defer func() {
		if err != nil {
			_ = repo.Rollback()
		}
	}()

	it, err := repo.Items.GetByID(ctx, id)
	if err != nil {
		return entity.Item{}, err
	}

	if err = checkOwner(user, it); err != nil {
		return entity.Item{}, err
	}

	if req.Title != nil {
		it.Title = *req.Title
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	it.UpdatedAt = time.Now()

	if err = repo.Items.UpdateItem(ctx, it); err != nil {
		return entity.Item{}, err
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit item update")
		return entity.Item{}, err
	}

	return it, nil
}

func (s *itemService) DeleteItem(ctx context.Context, user entity.UserLoginData, id string) error {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.itemRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	it, err := repo.Items.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := checkOwner(user, it); err != nil {
		return err
	}

	return repo.Items.DeleteItem(ctx, id)
}

func checkOwner(user entity.UserLoginData, it entity.Item) error {
	if !user.IsSuperuser && it.OwnerID != user.ID {
		return item.ErrNotEnoughPermissions
	}
	return nil
}

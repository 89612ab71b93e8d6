package itemService

import (
	"SimOCRBackend/internal/api/item"
	itemRepository "SimOCRBackend/internal/api/item/repository"
	"SimOCRBackend/internal/entity"
	"SimOCRBackend/pkg/response"
	"SimOCRBackend/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IItemService interface {
	ListItems(ctx context.Context, user entity.UserLoginData, page, pageSize int) (response.PagedData[item.ItemResponse], error)
	GetItem(ctx context.Context, user entity.UserLoginData, id string) (entity.Item, error)
	CreateItem(ctx context.Context, user entity.UserLoginData, req item.CreateItemRequest) (entity.Item, error)
	UpdateItem(ctx context.Context, user entity.UserLoginData, id string, req item.UpdateItemRequest) (entity.Item, error)
	DeleteItem(ctx context.Context, user entity.UserLoginData, id string) error
}

type itemService struct {
	log            *logrus.Logger
	itemRepository itemRepository.Repository
	utils          utils.IUtils
}

func NewItemService(log *logrus.Logger, ir itemRepository.Repository, utils utils.IUtils) IItemService {
	return &itemService{
		log:            log,
		itemRepository: ir,
		utils:          utils,
	}
}

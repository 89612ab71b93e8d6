package itemRepository

import (
	"SimOCRBackend/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item entity.Item) error
	GetByID(ctx context.Context, id string) (entity.Item, error)
	// List returns one page of items, newest first. An empty ownerID lists
	// every item.
	List(ctx context.Context, ownerID string, limit, offset int) ([]entity.Item, error)
	Count(ctx context.Context, ownerID string) (int, error)
	UpdateItem(ctx context.Context, item entity.Item) error
	DeleteItem(ctx context.Context, id string) error
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Items:    &itemRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Items ItemRepository

	Commit   func() error
	Rollback func() error
}

type itemRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

package itemRepository

import (
	"SimOCRBackend/internal/api/item"
	"SimOCRBackend/internal/entity"
	contextPkg "SimOCRBackend/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ItemDB struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	OwnerID     string         `db:"owner_id"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *itemRepository) CreateItem(ctx context.Context, it entity.Item) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"owner_id":    it.OwnerID,
		"created_at":  it.CreatedAt,
		"updated_at":  it.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateItem named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateItem execution err")
		return err
	}

	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var it ItemDB

	query, args, err := sqlx.Named(queryGetItemByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Item{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&it); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"item_id":    id,
			}).Warn("GetByID no rows found")
			return entity.Item{}, item.ErrItemNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Item{}, err
	}

	return r.makeItem(it), nil
}

func (r *itemRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var itemsList []ItemDB

	namedQuery := queryListItems
	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}
	if ownerID != "" {
		namedQuery = queryListItemsByOwner
		argsKV["owner_id"] = ownerID
	}

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &itemsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List execution err")
		return nil, err
	}

	items := make([]entity.Item, 0, len(itemsList))
	for _, it := range itemsList {
		items = append(items, r.makeItem(it))
	}

	return items, nil
}

func (r *itemRepository) Count(ctx context.Context, ownerID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	namedQuery := queryCountItems
	argsKV := map[string]interface{}{}
	if ownerID != "" {
		namedQuery = queryCountItemsByOwner
		argsKV["owner_id"] = ownerID
	}

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Count named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.GetContext(ctx, &total, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Count execution err")
		return 0, err
	}

	return total, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, it entity.Item) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"updated_at":  it.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateItem named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateItem execution err")
		return err
	}

	return r.expectOneRow(requestID, result, "UpdateItem")
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteItem, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteItem named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteItem execution err")
		return err
	}

	return r.expectOneRow(requestID, result, "DeleteItem")
}

func (r *itemRepository) expectOneRow(requestID string, result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn(op + " no rows affected")
		return item.ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) makeItem(it ItemDB) entity.Item {
	var createdAt, updatedAt time.Time

	if it.CreatedAt.Valid {
		createdAt = it.CreatedAt.Time
	}

	if it.UpdatedAt.Valid {
		updatedAt = it.UpdatedAt.Time
	}

	return entity.Item{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description.String,
		OwnerID:     it.OwnerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

package itemRepository

const (
	queryCreateItem = `
INSERT INTO items (id, title, description, owner_id, created_at, updated_at)
VALUES (:id, :title, :description, :owner_id, :created_at, :updated_at)`

	queryGetItemByID = `
SELECT id, title, description, owner_id, created_at, updated_at
FROM items
    WHERE id = :id`

	queryListItems = `
SELECT id, title, description, owner_id, created_at, updated_at
FROM items
ORDER BY created_at DESC, id DESC
LIMIT :limit OFFSET :offset`

	queryListItemsByOwner = `
SELECT id, title, description, owner_id, created_at, updated_at
FROM items
    WHERE owner_id = :owner_id
ORDER BY created_at DESC, id DESC
LIMIT :limit OFFSET :offset`

	queryCountItems = `
SELECT COUNT(*) FROM items`

	queryCountItemsByOwner = `
SELECT COUNT(*) FROM items
    WHERE owner_id = :owner_id`

	queryUpdateItem = `
UPDATE items
SET title = :title,
    description = :description,
    updated_at = :updated_at
WHERE id = :id`

	queryDeleteItem = `
DELETE FROM items
WHERE id = :id`
)

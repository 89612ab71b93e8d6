package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, email, full_name, hashed_password, is_active, is_superuser, created_at, updated_at)
VALUES (:id, :email, :full_name, :hashed_password, :is_active, :is_superuser, :created_at, :updated_at)`

	queryGetByID = `
SELECT id, email, full_name, hashed_password, is_active, is_superuser, created_at, updated_at
FROM users
    WHERE id = :id`

	queryGetByEmail = `
SELECT id, email, full_name, hashed_password, is_active, is_superuser, created_at, updated_at
FROM users
    WHERE email = :email`

	queryUpdateUser = `
UPDATE users
SET email = :email,
    full_name = :full_name,
    is_active = :is_active,
    is_superuser = :is_superuser,
    updated_at = :updated_at
WHERE id = :id`

	queryUpdatePassword = `
UPDATE users
SET hashed_password = :hashed_password,
    updated_at = :updated_at
WHERE id = :id`

	queryDeleteUser = `
DELETE FROM users
WHERE id = :id`
)

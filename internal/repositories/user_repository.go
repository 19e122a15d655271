package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"kone-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, confirmed, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Confirmed, &user.CreatedAt, &user.UpdatedAt)
	return &user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, confirmed, created_at, updated_at
         FROM users WHERE email=$1`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Confirmed, &user.CreatedAt, &user.UpdatedAt)
	return &user, err
}

// Role reads only the role column, used by the post-login role resolution.
func (r *UserRepository) Role(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.DB.QueryRow(ctx,
		`SELECT role FROM users WHERE id=$1`, userID).Scan(&role)
	return role, err
}

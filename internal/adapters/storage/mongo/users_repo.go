package mongo

import (
	"context"
	"strings"
	"time"

	"eventhorizon/internal/domain/users"
	"eventhorizon/internal/ports/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	col *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{col: db.Collection("users")}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.col.InsertOne(ctx, userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	})
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.get(ctx, bson.M{"_id": strings.TrimSpace(id)})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.get(ctx, bson.M{"email": strings.TrimSpace(email)})
}

func (r *UsersRepo) get(ctx context.Context, filter bson.M) (users.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return users.User{}, ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}

	return users.User{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         auth.Role(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobly/apperr"
	"jobly/models"
)

type MongoUserRepo struct {
	DB *mongo.Client
}

func NewMongoUserRepo(db *mongo.Client) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("users")
}

// ensureUnique enforces the username and email uniqueness the Postgres
// schema gets from its constraints.
func (r *MongoUserRepo) ensureUnique(ctx context.Context, field string, value interface{}) error {
	n, err := r.collection().CountDocuments(ctx, bson.M{field: value})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Constraint(fmt.Sprintf("duplicate value violates unique constraint: users_%s_key", field))
	}
	return nil
}

func (r *MongoUserRepo) FindAll() ([]models.UserSummary, error) {
	ctx := context.Background()

	opts := options.Find().
		SetProjection(bson.M{"username": 1, "first_name": 1, "last_name": 1, "email": 1}).
		SetSort(bson.M{"last_name": 1})
	cur, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.UserSummary{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepo) FindOne(username string) (*models.User, error) {
	ctx := context.Background()

	user := &models.User{}
	err := r.collection().FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) Create(data models.UserCreate, hashedPassword string) (*models.User, error) {
	ctx := context.Background()

	if err := r.ensureUnique(ctx, "username", data.Username); err != nil {
		return nil, err
	}
	if err := r.ensureUnique(ctx, "email", data.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  data.Username,
		Password:  hashedPassword,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		PhotoURL:  data.PhotoURL,
		IsAdmin:   false,
	}
	if _, err := r.collection().InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) Update(username string, changes map[string]interface{}) (*models.User, error) {
	ctx := context.Background()

	if err := filterChanges(changes, userColumns); err != nil {
		return nil, err
	}

	if newName, ok := changes["username"]; ok && newName != username {
		if err := r.ensureUnique(ctx, "username", newName); err != nil {
			return nil, err
		}
	}
	if email, ok := changes["email"]; ok {
		// The row being updated may keep its own email.
		n, err := r.collection().CountDocuments(ctx, bson.M{"email": email, "username": bson.M{"$ne": username}})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperr.Constraint("duplicate value violates unique constraint: users_email_key")
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &models.User{}
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"username": username}, bson.M{"$set": changes}, opts).
		Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("Could not locate the user with username %s", username))
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) Delete(username string) (string, error) {
	ctx := context.Background()

	user := &models.User{}
	err := r.collection().FindOneAndDelete(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", apperr.NotFound(fmt.Sprintf("There is no user with the username of %s", username))
		}
		return "", err
	}
	return user.Username, nil
}

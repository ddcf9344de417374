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

const mongoDatabase = "jobly"

type MongoCompanyRepo struct {
	DB *mongo.Client
}

func NewMongoCompanyRepo(db *mongo.Client) *MongoCompanyRepo {
	return &MongoCompanyRepo{DB: db}
}

func (r *MongoCompanyRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("companies")
}

func (r *MongoCompanyRepo) jobs() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("jobs")
}

func (r *MongoCompanyRepo) FindAll(filter models.CompanyFilter) ([]models.CompanySummary, error) {
	ctx := context.Background()

	query := bson.M{}
	if filter.Search != "" {
		query["handle"] = filter.Search
	}
	bounds := bson.M{}
	if filter.MinEmployees != nil {
		bounds["$gte"] = *filter.MinEmployees
	}
	if filter.MaxEmployees != nil {
		bounds["$lte"] = *filter.MaxEmployees
	}
	if len(bounds) > 0 {
		query["num_employees"] = bounds
	}

	opts := options.Find().
		SetProjection(bson.M{"handle": 1, "name": 1}).
		SetSort(bson.M{"handle": 1})
	cur, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	companies := []models.CompanySummary{}
	if err := cur.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *MongoCompanyRepo) FindOne(handle string) (*models.Company, error) {
	ctx := context.Background()

	company := &models.Company{}
	err := r.collection().FindOne(ctx, bson.M{"handle": handle}).Decode(company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
		}
		return nil, err
	}
	return company, nil
}

func (r *MongoCompanyRepo) Create(data models.CompanyCreate) (*models.Company, error) {
	ctx := context.Background()

	n, err := r.collection().CountDocuments(ctx, bson.M{"handle": data.Handle})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperr.Constraint("duplicate value violates unique constraint: companies_pkey")
	}

	company := &models.Company{
		Handle:       data.Handle,
		Name:         data.Name,
		NumEmployees: data.NumEmployees,
		Description:  data.Description,
		LogoURL:      data.LogoURL,
	}
	if _, err := r.collection().InsertOne(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (r *MongoCompanyRepo) Update(handle string, changes map[string]interface{}) (*models.Company, error) {
	ctx := context.Background()

	if err := filterChanges(changes, companyColumns); err != nil {
		return nil, err
	}

	if newHandle, ok := changes["handle"]; ok && newHandle != handle {
		n, err := r.collection().CountDocuments(ctx, bson.M{"handle": newHandle})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperr.Constraint("duplicate value violates unique constraint: companies_pkey")
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	company := &models.Company{}
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"handle": handle}, bson.M{"$set": changes}, opts).
		Decode(company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
		}
		return nil, err
	}

	// A handle rename follows through to the jobs that reference it, the
	// same way the relational schema cascades the key update.
	if company.Handle != handle {
		_, err := r.jobs().UpdateMany(ctx,
			bson.M{"company_handle": handle},
			bson.M{"$set": bson.M{"company_handle": company.Handle}})
		if err != nil {
			return nil, err
		}
	}
	return company, nil
}

func (r *MongoCompanyRepo) Delete(handle string) (string, error) {
	ctx := context.Background()

	// Jobs keep referencing their company; a company with jobs cannot go.
	n, err := r.jobs().CountDocuments(ctx, bson.M{"company_handle": handle})
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
	}

	company := &models.Company{}
	err = r.collection().FindOneAndDelete(ctx, bson.M{"handle": handle}).Decode(company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", apperr.NotFound(fmt.Sprintf("There is no company with handle of %s", handle))
		}
		return "", err
	}
	return company.Handle, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobly/apperr"
	"jobly/models"
)

type MongoJobRepo struct {
	DB *mongo.Client
}

func NewMongoJobRepo(db *mongo.Client) *MongoJobRepo {
	return &MongoJobRepo{DB: db}
}

func (r *MongoJobRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("jobs")
}

// nextJobID draws an auto-incrementing id from the counters collection,
// mirroring the SERIAL column of the Postgres schema.
func (r *MongoJobRepo) nextJobID(ctx context.Context) (int64, error) {
	counters := r.DB.Database(mongoDatabase).Collection("counters")

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := counters.
		FindOneAndUpdate(ctx, bson.M{"_id": "jobs"}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *MongoJobRepo) companyExists(ctx context.Context, handle string) (bool, error) {
	n, err := r.DB.Database(mongoDatabase).Collection("companies").
		CountDocuments(ctx, bson.M{"handle": handle})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoJobRepo) FindAll(filter models.JobFilter) ([]models.JobSummary, error) {
	ctx := context.Background()

	query := bson.M{}
	if filter.Search != "" {
		query["title"] = filter.Search
	}
	bounds := bson.M{}
	if filter.MinSalary != nil {
		bounds["$gte"] = *filter.MinSalary
	}
	if filter.MaxSalary != nil {
		bounds["$lte"] = *filter.MaxSalary
	}
	if len(bounds) > 0 {
		query["salary"] = bounds
	}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "company_handle": 1}).
		SetSort(bson.M{"date_posted": -1})
	cur, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []models.JobSummary{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *MongoJobRepo) FindOne(id int64) (*models.Job, error) {
	ctx := context.Background()

	job := &models.Job{}
	err := r.collection().FindOne(ctx, bson.M{"id": id}).Decode(job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
		}
		return nil, err
	}
	return job, nil
}

func (r *MongoJobRepo) Create(data models.JobCreate) (*models.Job, error) {
	ctx := context.Background()

	// Same contract as the Postgres FK: an unknown company is a
	// data-layer constraint failure, never a validation failure.
	exists, err := r.companyExists(ctx, data.CompanyHandle)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
	}

	id, err := r.nextJobID(ctx)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:            id,
		Title:         data.Title,
		Salary:        *data.Salary,
		Equity:        data.Equity,
		CompanyHandle: data.CompanyHandle,
		DatePosted:    time.Now().UTC(),
	}
	if _, err := r.collection().InsertOne(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (r *MongoJobRepo) Update(id int64, changes map[string]interface{}) (*models.Job, error) {
	ctx := context.Background()

	if err := filterChanges(changes, jobColumns); err != nil {
		return nil, err
	}

	if handle, ok := changes["company_handle"]; ok {
		exists, err := r.companyExists(ctx, handle.(string))
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.Constraint("foreign key violation: jobs_company_handle_fkey")
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	job := &models.Job{}
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": changes}, opts).
		Decode(job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("No jobs found with the id of %d", id))
		}
		return nil, err
	}
	return job, nil
}

func (r *MongoJobRepo) Delete(id int64) (int64, error) {
	ctx := context.Background()

	job := &models.Job{}
	err := r.collection().FindOneAndDelete(ctx, bson.M{"id": id}).Decode(job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, apperr.NotFound(fmt.Sprintf("There is no job with the id of %d", id))
		}
		return 0, err
	}
	return job.ID, nil
}

package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"proconecta/database"
	"proconecta/models"
	"proconecta/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepo implements RatingRepository using MongoDB. It holds
// the services and users collections as well, because a submission and
// its denormalized copies commit in one transaction.
type MongoRatingRepo struct {
	providerColl *mongo.Collection // clients rating providers
	clientColl   *mongo.Collection // providers rating clients
	serviceColl  *mongo.Collection
	userColl     *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	db := database.DB()
	repo := &MongoRatingRepo{
		providerColl: db.Collection(string(models.SpaceProvider)),
		clientColl:   db.Collection(string(models.SpaceClient)),
		serviceColl:  db.Collection("services"),
		userColl:     db.Collection("users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subjectId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	for _, coll := range []*mongo.Collection{r.providerColl, r.clientColl} {
		if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}
	return nil
}

func (r *MongoRatingRepo) spaceColl(space models.RatingSpace) *mongo.Collection {
	if space == models.SpaceClient {
		return r.clientColl
	}
	return r.providerColl
}

// slotFields returns the denormalized slot on the service document for
// the given space: the client's verdict fields when clients rate
// providers, the provider's when providers rate clients.
func slotFields(space models.RatingSpace) (ratedAt, rating, comment string) {
	if space == models.SpaceClient {
		return "providerRatedAt", "providerRating", "providerComment"
	}
	return "clientRatedAt", "clientRating", "clientComment"
}

// Submit appends the record and maintains every denormalized copy in a
// single transaction. The slot guard ($exists: false on the rated-at
// field) makes a second submission for the same service and role match
// nothing, so the average can never double-count.
func (r *MongoRatingRepo) Submit(ctx context.Context, space models.RatingSpace, rec *models.RatingRecord) (float64, int, error) {
	client := r.serviceColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return 0, 0, &utils.NetworkError{Op: "start rating session", Err: err}
	}
	defer sess.EndSession(ctx)

	var avg float64
	var count int

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		rec.CreatedAt = now

		ratedAtField, ratingField, commentField := slotFields(space)
		filter := bson.M{
			"id":         rec.ServiceID,
			"status":     models.StatusCompleted,
			ratedAtField: bson.M{"$exists": false},
		}
		update := bson.M{"$set": bson.M{
			ratingField:  rec.Rating,
			commentField: rec.Comment,
			ratedAtField: now,
			"updatedAt":  now,
		}}
		res, err := r.serviceColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("write rating slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrAlreadyRated
		}

		if _, err := r.spaceColl(space).InsertOne(sc, rec); err != nil {
			return fmt.Errorf("insert rating record failed: %w", err)
		}

		// Recompute the mean over the whole space inside the
		// transaction, so concurrent submissions cannot lose updates.
		cursor, err := r.spaceColl(space).Find(sc, bson.M{"subjectId": rec.SubjectID})
		if err != nil {
			return fmt.Errorf("read rating space failed: %w", err)
		}
		var sum int
		count = 0
		for cursor.Next(sc) {
			var existing models.RatingRecord
			if err := cursor.Decode(&existing); err != nil {
				cursor.Close(sc)
				return fmt.Errorf("decode rating record failed: %w", err)
			}
			sum += existing.Rating
			count++
		}
		cursor.Close(sc)
		avg = float64(sum) / float64(count)

		profileSet := bson.M{"updatedAt": now}
		if space == models.SpaceClient {
			profileSet["clientRating"] = avg
			profileSet["totalClientRatings"] = count
			profileSet["totalServicesRequested"] = count
		} else {
			profileSet["rating"] = avg
			profileSet["totalRatings"] = count
			profileSet["servicesCompleted"] = count
		}
		if _, err := r.userColl.UpdateOne(sc, bson.M{"id": rec.SubjectID}, bson.M{"$set": profileSet}); err != nil {
			return fmt.Errorf("write profile average failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrAlreadyRated {
			return 0, 0, err
		}
		return 0, 0, &utils.NetworkError{Op: "submit rating", Err: err}
	}

	return avg, count, nil
}

// ListBySubject returns the subject's records, newest first.
func (r *MongoRatingRepo) ListBySubject(space models.RatingSpace, subjectID string) ([]models.RatingRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.spaceColl(space).Find(ctx, bson.M{"subjectId": subjectID}, opts)
	if err != nil {
		return nil, &utils.NetworkError{Op: "list ratings", Err: err}
	}
	defer cursor.Close(ctx)

	var out []models.RatingRecord
	for cursor.Next(ctx) {
		var rec models.RatingRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, &utils.NetworkError{Op: "decode rating record", Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

package messageRepo

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

// MongoMessageRepo implements MessageRepository using MongoDB. The
// per-service sequence lives on the service document and is claimed
// with an atomic increment, so appends serialize without client locks.
type MongoMessageRepo struct {
	coll        *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoMessageRepo creates a new instance of MessageRepository using MongoDB.
func NewMongoMessageRepo() MessageRepository {
	db := database.DB()
	repo := &MongoMessageRepo{
		coll:        db.Collection("messages"),
		serviceColl: db.Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoMessageRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "seq", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append claims the next sequence number from the service document and
// inserts the message.
func (r *MongoMessageRepo) Append(msg *models.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var svc models.ServiceRequest
	err := r.serviceColl.FindOneAndUpdate(
		ctx,
		bson.M{"id": msg.ServiceID},
		bson.M{"$inc": bson.M{"messageSeq": 1}},
		opts,
	).Decode(&svc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &utils.NotFoundError{Resource: "service request", ID: msg.ServiceID}
		}
		return &utils.NetworkError{Op: "claim message sequence", Err: err}
	}

	msg.Seq = svc.MessageSeq
	msg.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return &utils.NetworkError{Op: "append message", Err: err}
	}
	return nil
}

// ListByService returns the feed in ascending sequence order.
func (r *MongoMessageRepo) ListByService(serviceID string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"serviceId": serviceID}, opts)
	if err != nil {
		return nil, &utils.NetworkError{Op: "list messages", Err: err}
	}
	defer cursor.Close(ctx)

	var out []models.Message
	for cursor.Next(ctx) {
		var m models.Message
		if err := cursor.Decode(&m); err != nil {
			return nil, &utils.NetworkError{Op: "decode message", Err: err}
		}
		out = append(out, m)
	}
	return out, nil
}

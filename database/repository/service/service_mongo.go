package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"proconecta/database"
	"proconecta/models"
	"proconecta/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB. It also
// holds the message and notification collections so a transition, its
// counterparty notification and its proposal message commit atomically.
type MongoServiceRepo struct {
	coll      *mongo.Collection
	msgColl   *mongo.Collection
	notifColl *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	db := database.DB()
	repo := &MongoServiceRepo{
		coll:      db.Collection("services"),
		msgColl:   db.Collection("messages"),
		notifColl: db.Collection("notifications"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "serviceType", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new service request document.
func (r *MongoServiceRepo) Create(req *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return &utils.NetworkError{Op: "create service request", Err: err}
	}
	return nil
}

// GetByID retrieves a service request by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "service request", ID: id}
		}
		return nil, &utils.NetworkError{Op: "fetch service request", Err: err}
	}
	return &req, nil
}

// ListByParticipant returns the user's requests, newest first.
func (r *MongoServiceRepo) ListByParticipant(userID string, role models.UserType) ([]models.ServiceRequest, error) {
	field := "clientId"
	if role == models.UserTypeProvider {
		field = "providerId"
	}
	return r.list(bson.M{field: userID})
}

// ListOpen returns pending, unassigned requests, optionally restricted
// to the given service types.
func (r *MongoServiceRepo) ListOpen(categories []string) ([]models.ServiceRequest, error) {
	filter := bson.M{"status": models.StatusPending, "providerId": ""}
	if len(categories) > 0 {
		filter["serviceType"] = bson.M{"$in": categories}
	}
	return r.list(filter)
}

func (r *MongoServiceRepo) list(filter bson.M) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, &utils.NetworkError{Op: "list service requests", Err: err}
	}
	defer cursor.Close(ctx)

	var out []models.ServiceRequest
	for cursor.Next(ctx) {
		var req models.ServiceRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, &utils.NetworkError{Op: "decode service request", Err: err}
		}
		out = append(out, req)
	}
	return out, nil
}

// AddPhotoRef appends an uploaded photo reference to the request.
func (r *MongoServiceRepo) AddPhotoRef(serviceID, ref string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"photoRefs": ref},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": serviceID}, update)
	if err != nil {
		return &utils.NetworkError{Op: "attach service photo", Err: err}
	}
	if res.MatchedCount == 0 {
		return &utils.NotFoundError{Resource: "service request", ID: serviceID}
	}
	return nil
}

// ApplyTransition performs one conditional lifecycle write inside a
// Mongo transaction. The filter encodes the expected prior state, so a
// concurrent writer that got there first leaves MatchedCount at zero
// and the transition fails without mutating anything.
func (r *MongoServiceRepo) ApplyTransition(ctx context.Context, t Transition) (*models.ServiceRequest, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, &utils.NetworkError{Op: "start transition session", Err: err}
	}
	defer sess.EndSession(ctx)

	var updated models.ServiceRequest

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": t.ServiceID}
		if len(t.From) > 0 {
			filter["status"] = bson.M{"$in": t.From}
		}
		if t.RequireUnassigned {
			filter["providerId"] = ""
		}
		if t.RequireProviderID != "" {
			filter["providerId"] = t.RequireProviderID
		}
		if t.RequireProposalVersion > 0 {
			filter["proposalVersion"] = t.RequireProposalVersion
		}

		now := time.Now()
		set := bson.M{
			"status":    t.NewStatus,
			"updatedAt": now,
		}
		inc := bson.M{}
		if t.AssignProvider != nil {
			set["providerId"] = t.AssignProvider.ID
			set["providerName"] = t.AssignProvider.Name
		}
		if t.SetValue != nil {
			set["value"] = *t.SetValue
		}
		if t.SetProposedValue != nil {
			set["proposedValue"] = *t.SetProposedValue
			inc["proposalVersion"] = 1
		}
		if t.ClearProposedValue {
			set["proposedValue"] = float64(0)
		}
		if t.SetAcceptedAt {
			set["acceptedAt"] = now
		}
		if t.SetCompletedAt {
			set["completedAt"] = now
		}
		if t.Message != nil {
			inc["messageSeq"] = 1
		}

		update := bson.M{"$set": set}
		if len(inc) > 0 {
			update["$inc"] = inc
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := r.coll.FindOneAndUpdate(sc, filter, update, opts).Decode(&updated); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrPreconditionFailed
			}
			return fmt.Errorf("conditional update failed: %w", err)
		}

		if t.Notification != nil {
			n := *t.Notification
			n.ID = uuid.NewString()
			n.ServiceID = t.ServiceID
			n.CreatedAt = now
			if _, err := r.notifColl.InsertOne(sc, n); err != nil {
				return fmt.Errorf("insert notification failed: %w", err)
			}
		}

		if t.Message != nil {
			m := *t.Message
			m.ID = uuid.NewString()
			m.ServiceID = t.ServiceID
			m.Seq = updated.MessageSeq
			m.CreatedAt = now
			if _, err := r.msgColl.InsertOne(sc, m); err != nil {
				return fmt.Errorf("insert proposal message failed: %w", err)
			}
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
		if err == ErrPreconditionFailed {
			return nil, err
		}
		return nil, &utils.NetworkError{Op: "apply transition", Err: err}
	}

	return &updated, nil
}

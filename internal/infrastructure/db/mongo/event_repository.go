package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

const eventsCollection = "events"

// EventRepository is the MongoDB implementation of ports.EventRepository.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

type mongoEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	Location     string             `bson:"location,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	Participants []string           `bson:"participants"`
	Status       string             `bson:"status"`
	StartsAt     time.Time          `bson:"starts_at"`
	EndsAt       time.Time          `bson:"ends_at"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	doc := toMongoEvent(e)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainEvent(doc), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var doc mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return toDomainEvent(doc), nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	set := bson.M{
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"status":      string(e.Status),
		"starts_at":   e.StartsAt,
		"ends_at":     e.EndsAt,
		"updated_at":  e.UpdatedAt,
	}

	var doc mongoEvent
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return toDomainEvent(doc), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// AddParticipant appends with $addToSet so concurrent joins cannot produce a
// duplicate entry.
func (r *EventRepository) AddParticipant(ctx context.Context, id, userID string) (*domain.Event, error) {
	return r.updateParticipants(ctx, id, bson.M{"$addToSet": bson.M{"participants": userID}})
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, id, userID string) (*domain.Event, error) {
	return r.updateParticipants(ctx, id, bson.M{"$pull": bson.M{"participants": userID}})
}

func (r *EventRepository) updateParticipants(ctx context.Context, id string, update bson.M) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}

	var doc mongoEvent
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update participants: %w", err)
	}
	return toDomainEvent(doc), nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.ParticipantID != "" {
		query["participants"] = filter.ParticipantID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	startsAt := bson.M{}
	if !filter.From.IsZero() {
		startsAt["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		startsAt["$lte"] = filter.To
	}
	if len(startsAt) > 0 {
		query["starts_at"] = startsAt
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "starts_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, toDomainEvent(doc))
	}
	return events, total, nil
}

func toMongoEvent(e *domain.Event) mongoEvent {
	return mongoEvent{
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		OwnerID:      e.OwnerID,
		Participants: e.Participants,
		Status:       string(e.Status),
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toDomainEvent(doc mongoEvent) *domain.Event {
	return &domain.Event{
		ID:           doc.ID.Hex(),
		Title:        doc.Title,
		Description:  doc.Description,
		Location:     doc.Location,
		OwnerID:      doc.OwnerID,
		Participants: doc.Participants,
		Status:       domain.EventStatus(doc.Status),
		StartsAt:     doc.StartsAt,
		EndsAt:       doc.EndsAt,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

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

const projectsCollection = "projects"

// ProjectRepository is the MongoDB implementation of ports.ProjectRepository.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Members     []string           `bson:"members"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	doc := mongoProject{
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Members:     p.Members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainProject(doc), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var doc mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return toDomainProject(doc), nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var doc mongoProject
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        p.Name,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return toDomainProject(doc), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, id, userID string) (*domain.Project, error) {
	return r.updateMembers(ctx, id, bson.M{"$addToSet": bson.M{"members": userID}})
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, id, userID string) (*domain.Project, error) {
	return r.updateMembers(ctx, id, bson.M{"$pull": bson.M{"members": userID}})
}

func (r *ProjectRepository) updateMembers(ctx context.Context, id string, update bson.M) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}

	var doc mongoProject
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update members: %w", err)
	}
	return toDomainProject(doc), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.MemberID != "" {
		query["members"] = filter.MemberID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProject
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, toDomainProject(doc))
	}
	return projects, total, nil
}

func toDomainProject(doc mongoProject) *domain.Project {
	return &domain.Project{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		OwnerID:     doc.OwnerID,
		Members:     doc.Members,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

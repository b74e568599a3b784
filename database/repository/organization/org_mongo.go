package orgRepo

import (
	"context"
	"fmt"
	"time"

	"equiptrack/database"
	"equiptrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrgRepo implements OrganizationRepository using MongoDB.
type MongoOrgRepo struct {
	orgs     *mongo.Collection
	settings *mongo.Collection
}

// NewMongoOrgRepo creates a new instance of OrganizationRepository using MongoDB.
func NewMongoOrgRepo() OrganizationRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoOrgRepo{
		orgs:     db.Collection("organizations"),
		settings: db.Collection("integration_settings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrgRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.orgs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create org indexes: %w", err)
	}
	if _, err := r.settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "orgId", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create settings indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an organization by its unique id.
func (r *MongoOrgRepo) GetByID(id string) (*models.Organization, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var org models.Organization
	if err := r.orgs.FindOne(ctx, bson.M{"id": id}).Decode(&org); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch organization %s: %w", id, err)
	}
	return &org, nil
}

// ListIntegrationEnabled returns all organizations with the integration flag set.
func (r *MongoOrgRepo) ListIntegrationEnabled() ([]models.Organization, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.orgs.Find(ctx, bson.M{"integrationEnabled": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list integration-enabled organizations: %w", err)
	}
	defer cursor.Close(ctx)

	var orgs []models.Organization
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, fmt.Errorf("failed to decode organizations: %w", err)
	}
	return orgs, nil
}

// Create inserts a new organization document.
func (r *MongoOrgRepo) Create(org *models.Organization) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.orgs.InsertOne(ctx, org); err != nil {
		return fmt.Errorf("failed to create organization %s: %w", org.ID, err)
	}
	return nil
}

// Update applies a partial field merge to one organization.
func (r *MongoOrgRepo) Update(id string, fields map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.orgs.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("organization %s not found", id)
	}
	return nil
}

// GetSettings retrieves the restricted integration settings document.
func (r *MongoOrgRepo) GetSettings(orgID string) (*models.IntegrationSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var settings models.IntegrationSettings
	if err := r.settings.FindOne(ctx, bson.M{"orgId": orgID}).Decode(&settings); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch integration settings for org %s: %w", orgID, err)
	}
	return &settings, nil
}

// UpsertSettings merges fields into the settings document, creating it if needed.
func (r *MongoOrgRepo) UpsertSettings(orgID string, fields map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"orgId": orgID},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.settings.UpdateOne(ctx, bson.M{"orgId": orgID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert integration settings for org %s: %w", orgID, err)
	}
	return nil
}

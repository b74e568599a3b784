package deviceRepo

import (
	"fmt"
	"time"

	"equiptrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a device by its internal id within an organization.
func (r *MongoDeviceRepo) GetByID(orgID, id string) (*models.EquipmentDevice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var device models.EquipmentDevice
	if err := r.coll.FindOne(ctx, bson.M{"orgId": orgID, "id": id}).Decode(&device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch device %s: %w", id, err)
	}
	return &device, nil
}

// GetBySerial retrieves the device matching a serial number, or nil when absent.
func (r *MongoDeviceRepo) GetBySerial(orgID, serial string) (*models.EquipmentDevice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var device models.EquipmentDevice
	if err := r.coll.FindOne(ctx, bson.M{"orgId": orgID, "serialNumber": serial}).Decode(&device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch device with serial %s: %w", serial, err)
	}
	return &device, nil
}

// GetByCommandDeviceID retrieves the device holding a remote device id, or nil.
func (r *MongoDeviceRepo) GetByCommandDeviceID(orgID, commandDeviceID string) (*models.EquipmentDevice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var device models.EquipmentDevice
	filter := bson.M{"orgId": orgID, "commandDeviceId": commandDeviceID}
	if err := r.coll.FindOne(ctx, filter).Decode(&device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch device with remote id %s: %w", commandDeviceID, err)
	}
	return &device, nil
}

// ListByOrg returns the organization's devices.
func (r *MongoDeviceRepo) ListByOrg(orgID string, includeDeleted bool) ([]models.EquipmentDevice, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"orgId": orgID}
	if !includeDeleted {
		filter["deleted"] = false
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices for org %s: %w", orgID, err)
	}
	defer cursor.Close(ctx)

	var devices []models.EquipmentDevice
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices for org %s: %w", orgID, err)
	}
	return devices, nil
}

// ListSynced returns non-deleted devices already matched to the remote platform.
func (r *MongoDeviceRepo) ListSynced(orgID string) ([]models.EquipmentDevice, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"orgId":           orgID,
		"deleted":         false,
		"commandDeviceId": bson.M{"$nin": bson.A{nil, ""}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list synced devices for org %s: %w", orgID, err)
	}
	defer cursor.Close(ctx)

	var devices []models.EquipmentDevice
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode synced devices for org %s: %w", orgID, err)
	}
	return devices, nil
}

// ActiveSiteIDs returns the distinct remote site ids referenced by non-deleted devices.
func (r *MongoDeviceRepo) ActiveSiteIDs(orgID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"orgId":         orgID,
		"deleted":       false,
		"commandSiteId": bson.M{"$nin": bson.A{nil, ""}},
	}
	values, err := r.coll.Distinct(ctx, "commandSiteId", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query active site ids for org %s: %w", orgID, err)
	}

	siteIDs := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			siteIDs = append(siteIDs, s)
		}
	}
	return siteIDs, nil
}

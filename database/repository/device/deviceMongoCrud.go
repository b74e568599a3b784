package deviceRepo

import (
	"fmt"
	"time"

	"equiptrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new device record.
func (r *MongoDeviceRepo) Create(device *models.EquipmentDevice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, device); err != nil {
		return fmt.Errorf("failed to create device %s: %w", device.SerialNumber, err)
	}
	return nil
}

// Update applies a partial field merge to one device.
func (r *MongoDeviceRepo) Update(orgID, id string, fields map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"orgId": orgID, "id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update device %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("device %s not found in org %s", id, orgID)
	}
	return nil
}

// CommitBatch applies one batch of prepared write operations via BulkWrite.
// Creates must already carry an id in Fields; updates merge into the target.
func (r *MongoDeviceRepo) CommitBatch(orgID string, ops []models.DeviceWriteOp) (int, error) {
	if len(ops) == 0 {
		return 0, nil
	}

	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	writeModels := make([]mongo.WriteModel, 0, len(ops))
	for _, op := range ops {
		switch op.Action {
		case models.WriteActionUpdate:
			writeModels = append(writeModels, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"orgId": orgID, "id": op.TargetID}).
				SetUpdate(bson.M{"$set": op.Fields}))
		case models.WriteActionCreate:
			doc := bson.M{"orgId": orgID, "serialNumber": op.SerialNumber}
			for k, v := range op.Fields {
				doc[k] = v
			}
			writeModels = append(writeModels, mongo.NewInsertOneModel().SetDocument(doc))
		default:
			return 0, fmt.Errorf("unknown write action %q", op.Action)
		}
	}

	res, err := r.coll.BulkWrite(ctx, writeModels, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("bulk write failed for org %s: %w", orgID, err)
	}
	return int(res.ModifiedCount + res.InsertedCount + res.UpsertedCount), nil
}

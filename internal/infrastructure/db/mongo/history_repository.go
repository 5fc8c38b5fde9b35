package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

const collectionHistory = "history"

type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{col: db.Collection(collectionHistory)}
}

type mongoHistory struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	UID   string             `bson:"uid"`
	Text  string             `bson:"text"`
	Label string             `bson:"label"`
	Prob  float64            `bson:"prob"`
	Time  time.Time          `bson:"time"`
}

func (r *HistoryRepository) Append(ctx context.Context, rec *domain.HistoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoHistory{
		ID:    primitive.NewObjectID(),
		UID:   rec.UserID,
		Text:  rec.Text,
		Label: string(rec.Label),
		Prob:  rec.Confidence,
		Time:  rec.Timestamp,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	rec.ID = doc.ID.Hex()
	return nil
}

func (r *HistoryRepository) ListFor(ctx context.Context, userID string) ([]*domain.HistoryRecord, error) {
	docs, err := r.find(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]*domain.HistoryRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.HistoryRecord{
			ID:         d.ID.Hex(),
			UserID:     d.UID,
			Text:       d.Text,
			Label:      domain.Label(d.Label),
			Confidence: d.Prob,
			Timestamp:  d.Time.Local(),
		})
	}
	return out, nil
}

func (r *HistoryRepository) CountByLabel(ctx context.Context, userID string, label domain.Label) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"uid": userID, "label": string(label)})
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return int(n), nil
}

func (r *HistoryRepository) TextsFor(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.find(ctx, userID, bson.M{"text": 1})
	if err != nil {
		return nil, fmt.Errorf("history texts: %w", err)
	}

	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		texts = append(texts, d.Text)
	}
	return texts, nil
}

func (r *HistoryRepository) find(ctx context.Context, userID string, projection bson.M) ([]mongoHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if projection != nil {
		opts.SetProjection(projection)
	}

	cur, err := r.col.Find(ctx, bson.M{"uid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoHistory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// EnsureIndexes creates the indexes backing per-user listing and counting.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}},
		{Keys: bson.D{{Key: "uid", Value: 1}, {Key: "label", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

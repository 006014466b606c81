package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/infra/persistence/model"
)

const defaultCollectionName = "village_report"

type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

// Save 只替换 version 更小的文档；文档不存在时插入。
func (r *ReportRepository) Save(ctx context.Context, s *entity.ReportPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb report collection is nil")
	}
	doc := model.ReportToDoc(s)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.SessionID, "version": bson.M{"$lt": doc.Version}},
		doc,
		options.Replace().SetUpsert(true),
	)
	// 已有更新版本时 upsert 会撞主键，说明本次快照过期
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *ReportRepository) Find(ctx context.Context, sessionID string) (entity.Report, error) {
	if r == nil || r.coll == nil {
		return entity.Report{}, errors.New("mongodb report collection is nil")
	}
	var doc model.ReportDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Report{}, port.ErrReportNotFound.WithData("session_id", sessionID)
	}
	if err != nil {
		return entity.Report{}, err
	}
	return model.DocToReport(doc), nil
}

func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]entity.Report, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb report collection is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []model.ReportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Report, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.DocToReport(d))
	}
	return out, nil
}

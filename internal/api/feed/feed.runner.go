package feed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/api/base/models"
	"vidtube/internal/common"
	"vidtube/internal/logger"
	"vidtube/internal/metrics"
)

// Aggregator là phần của *mongo.Collection mà feed cần
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
}

type facetResult[T any] struct {
	Items      []T `bson:"items"`
	TotalCount []struct {
		Count int64 `bson:"count"`
	} `bson:"totalCount"`
}

// List chạy feed có phân trang. name dùng cho metrics và log.
func List[T any](ctx context.Context, coll Aggregator, name string, q ListQuery) (result *models.PaginateResult[T], err error) {
	start := time.Now()
	defer func() { metrics.ObserveFeed(name, start, err) }()

	cursor, err := coll.Aggregate(ctx, BuildListPipeline(q))
	if err != nil {
		logger.WithModule("feed").WithError(err).WithField("feed", name).Error("Chạy pipeline thất bại")
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var raw facetResult[T]
	if cursor.Next(ctx) {
		if err = cursor.Decode(&raw); err != nil {
			return nil, errors.WithMessage(common.ErrInvalidFormat, err.Error())
		}
	}
	if err = cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	var total int64
	if len(raw.TotalCount) > 0 {
		total = raw.TotalCount[0].Count
	}
	return models.NewPaginateResult(raw.Items, total, q.Page, q.Limit), nil
}

// FindOneEnriched chạy pipeline cho một document. Không có document trả về common.ErrNotFound.
func FindOneEnriched[T any](ctx context.Context, coll Aggregator, name string, match bson.M, joins []JoinSpec, stages []bson.M) (out T, err error) {
	start := time.Now()
	defer func() {
		if err != nil && common.IsNotFound(err) {
			metrics.ObserveFeed(name, start, nil)
			return
		}
		metrics.ObserveFeed(name, start, err)
	}()

	cursor, err := coll.Aggregate(ctx, BuildSinglePipeline(match, joins, stages))
	if err != nil {
		return out, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err = cursor.Err(); err != nil {
			return out, common.ConvertMongoError(err)
		}
		return out, common.ErrNotFound
	}
	if err = cursor.Decode(&out); err != nil {
		return out, errors.WithMessage(common.ErrInvalidFormat, err.Error())
	}
	return out, nil
}

package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mocnepiwko/uni-diary/core/homework"
)

type homeworkDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Subject     string             `bson:"subject"`
	Description string             `bson:"description"`
	Deadline    time.Time          `bson:"deadline"`
	CreatedBy   string             `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d homeworkDoc) toHomework() homework.Homework {
	return homework.Homework{
		ID:          d.ID.Hex(),
		Subject:     d.Subject,
		Description: d.Description,
		Deadline:    d.Deadline.UTC(),
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type homeworkRepository struct {
	coll *mongo.Collection
}

var _ homework.Repository = (*homeworkRepository)(nil)

func NewHomeworkRepository(db *mongo.Database) homework.Repository {
	return &homeworkRepository{coll: db.Collection(homeworksCollection)}
}

func (repo *homeworkRepository) CreateHomework(ctx context.Context, hw homework.Homework) (homework.Homework, error) {
	oid := primitive.NewObjectID()
	doc := homeworkDoc{
		ID:          oid,
		Subject:     hw.Subject,
		Description: hw.Description,
		Deadline:    hw.Deadline,
		CreatedBy:   hw.CreatedBy,
		CreatedAt:   hw.CreatedAt,
		UpdatedAt:   hw.UpdatedAt,
	}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return homework.Homework{}, errors.Wrap(err, "inserting homework")
	}
	hw.ID = oid.Hex()
	return hw, nil
}

func (repo *homeworkRepository) QueryHomeworks(ctx context.Context, filter homework.QueryFilter) ([]homework.Homework, error) {
	query := bson.D{}
	if filter.Subject != "" {
		query = append(query, bson.E{Key: "subject", Value: filter.Subject})
	}
	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "createdAt", Value: 1}})

	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "finding homeworks")
	}
	var docs []homeworkDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding homeworks")
	}
	hws := make([]homework.Homework, 0, len(docs))
	for _, d := range docs {
		hws = append(hws, d.toHomework())
	}
	return hws, nil
}

func (repo *homeworkRepository) DeleteHomework(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	if _, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return nil
}

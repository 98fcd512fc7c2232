package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mocnepiwko/uni-diary/core/lesson"
)

type lessonDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Teacher   string             `bson:"teacher"`
	Room      string             `bson:"room"`
	Type      string             `bson:"type"`
	Day       string             `bson:"day"`
	StartTime string             `bson:"startTime"`
	EndTime   string             `bson:"endTime"`
	IsCustom  bool               `bson:"isCustom"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d lessonDoc) toLesson() lesson.Lesson {
	return lesson.Lesson{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Teacher:   d.Teacher,
		Room:      d.Room,
		Type:      d.Type,
		Day:       d.Day,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		IsCustom:  d.IsCustom,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type lessonRepository struct {
	coll *mongo.Collection
}

var _ lesson.Repository = (*lessonRepository)(nil)

func NewLessonRepository(db *mongo.Database) lesson.Repository {
	return &lessonRepository{coll: db.Collection(lessonsCollection)}
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	oid := primitive.NewObjectID()
	doc := lessonDoc{
		ID:        oid,
		Title:     l.Title,
		Teacher:   l.Teacher,
		Room:      l.Room,
		Type:      l.Type,
		Day:       l.Day,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
		IsCustom:  l.IsCustom,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	l.ID = oid.Hex()
	return l, nil
}

func (repo *lessonRepository) QueryLessons(ctx context.Context, filter lesson.QueryFilter) ([]lesson.Lesson, error) {
	query := bson.D{}
	if filter.Day != "" {
		query = append(query, bson.E{Key: "day", Value: filter.Day})
	}
	if filter.StartTime != "" {
		query = append(query, bson.E{Key: "startTime", Value: filter.StartTime})
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}, {Key: "createdAt", Value: 1}})

	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "finding lessons")
	}
	var docs []lessonDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding lessons")
	}
	lessons := make([]lesson.Lesson, 0, len(docs))
	for _, d := range docs {
		lessons = append(lessons, d.toLesson())
	}
	return lessons, nil
}

func (repo *lessonRepository) DeleteLesson(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	if _, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return nil
}

package shared

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/storage/database"
	"github.com/mocnepiwko/uni-diary/storage/database/inmem"
	"github.com/mocnepiwko/uni-diary/storage/database/mongodb"
	"github.com/mocnepiwko/uni-diary/storage/database/sqlx"
)

// Engines
const (
	EnginePostgres = "postgres"
	EngineMongo    = "mongo"
	EngineInmem    = "inmem"
)

var ErrUnknownEngine = errors.New("unknown database engine")

// Repositories are the stores of the configured engine.
type Repositories struct {
	Users     user.Repository
	Lessons   lesson.Repository
	Homeworks homework.Repository

	// SQL is the postgres handle, nil for the other engines.
	SQL *sql.DB

	close func() error
}

func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// OpenRepositories connects to conf.Database.Engine and runs its one-time schema setup:
// postgres migrations when migrate is set, mongo indexes always.
func OpenRepositories(ctx context.Context, conf *core.Config, logger core.Logger, migrate bool) (*Repositories, error) {
	logger.Info(fmt.Sprintf("database engine : %s", conf.Database.Engine))

	switch conf.Database.Engine {
	case EnginePostgres:
		return openPostgres(conf, migrate)
	case EngineMongo:
		return openMongo(ctx, conf)
	case EngineInmem:
		logger.Warn("in-memory database: data is lost on exit")
		db := inmemdb.Open()
		return &Repositories{
			Users:     inmemdb.NewUserRepository(db),
			Lessons:   inmemdb.NewLessonRepository(db),
			Homeworks: inmemdb.NewHomeworkRepository(db),
		}, nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, conf.Database.Engine)
	}
}

func openPostgres(conf *core.Config, migrate bool) (*Repositories, error) {
	if conf.Database.AdminUser != "" {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	xdb := sqlxrepos.NewDB(db)
	return &Repositories{
		Users:     sqlxrepos.NewUserRepository(xdb),
		Lessons:   sqlxrepos.NewLessonRepository(xdb),
		Homeworks: sqlxrepos.NewHomeworkRepository(xdb),
		SQL:       db,
		close:     db.Close,
	}, nil
}

func openMongo(ctx context.Context, conf *core.Config) (*Repositories, error) {
	db, err := mongorepos.Open(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err = mongorepos.EnsureIndexes(ctx, db); err != nil {
		_ = db.Client().Disconnect(ctx)
		return nil, err
	}

	return &Repositories{
		Users:     mongorepos.NewUserRepository(db),
		Lessons:   mongorepos.NewLessonRepository(db),
		Homeworks: mongorepos.NewHomeworkRepository(db),
		close:     disconnect(db.Client()),
	}, nil
}

func disconnect(client *mongo.Client) func() error {
	return func() error {
		return client.Disconnect(context.Background())
	}
}

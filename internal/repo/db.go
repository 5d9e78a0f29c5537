package repo

import (
	"ChefHub/internal/model"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// sqlitePragmas включают внешние ключи и ожидание блокировки для SQLite (modernc).
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// InitDB открывает БД по строке подключения и применяет миграции.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Open выбирает драйвер по DSN: postgres для URL/ключ-значение строк
// PostgreSQL, иначе SQLite (путь к файлу или ":memory:").
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database DSN must not be empty")
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(os.Stderr),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	if isPostgresDSN(dsn) {
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: withSQLitePragmas(dsn)}
	db, err := gorm.Open(dial, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// SQLite допускает одного писателя; одно соединение также сохраняет
	// in-memory БД живой между запросами.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// newGormLogger пишет предупреждения и ошибки SQL. ErrRecordNotFound не
// логируется: для проверок занятости имени это обычный исход.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate создаёт/обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}
	if err := db.AutoMigrate(
		&model.Chef{},
		&model.Ingredient{},
		&model.Dish{},
		&model.DishIngredientLine{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.HasPrefix(dsn, "host=")
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// searchCondition ищет подстроку в ключе поиска, свёрнутом при записи.
const searchCondition = `search_key LIKE ? ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern сворачивает запрос так же, как ключ поиска, и экранирует
// метасимволы LIKE, чтобы % и _ искались буквально.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(model.FoldSearch(search)) + "%"
}

package repo

import (
	"ChefHub/internal/model"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMigrate_NilDB(t *testing.T) {
	assert.Error(t, Migrate(nil))
}

func TestInitDB_CreatesTables(t *testing.T) {
	db := newTestDB(t)
	for _, table := range []string{"chefs", "ingredients", "dishes", "dish_ingredient_lines"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&model.Dish{}, "idx_dishes_chef_name"))
	assert.True(t, db.Migrator().HasIndex(&model.DishIngredientLine{}, "idx_lines_dish_ingredient_version"))
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost:5432/db"))
	assert.True(t, isPostgresDSN("postgresql://localhost/db"))
	assert.True(t, isPostgresDSN("host=localhost user=u dbname=db"))
	assert.False(t, isPostgresDSN("chefhub.db"))
	assert.False(t, isPostgresDSN(":memory:"))
}

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t, "a.db?"+sqlitePragmas, withSQLitePragmas("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+sqlitePragmas, withSQLitePragmas("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)", withSQLitePragmas("a.db?_pragma=journal_mode(WAL)"))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%rice%", likePattern("  RiCe "))
	assert.Equal(t, "%рис%", likePattern("РИС"))
	assert.Equal(t, `%100\% \_x\\%`, likePattern(`100% _x\`))
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: ":memory:"}, &gorm.Config{
		Logger: newGormLogger(&buf),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(db))

	var c model.Chef
	err = db.Where("username = ?", "nobody").First(&c).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "no_such_table")
}

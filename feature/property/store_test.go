package property

import (
	"context"
	"testing"
	"time"

	"renting-scraper/feature/property/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var propertyColumns = []string{
	"id", "source", "external_id", "description", "price", "location",
	"area_in_m3", "energy_certification", "link", "created_at", "updated_at", "deleted_at",
}

func TestStore_FindByKey(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(propertyColumns).
			AddRow("id-1", "imovirtual", "ext-1", "T2", 100.0, "Lisboa", nil, nil, "https://x/1", time.Now(), time.Now(), nil)

		// Unscoped lookup: no deleted_at filter, tombstones included.
		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE source = \\? AND external_id = \\?").
			WithArgs("imovirtual", "ext-1", 2).
			WillReturnRows(rows)

		entity, err := store.FindByKey(context.Background(), models.SourceImovirtual, "ext-1")
		require.NoError(t, err)
		require.NotNil(t, entity)
		assert.Equal(t, "id-1", entity.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Tombstoned row is returned", func(t *testing.T) {
		deletedAt := time.Now()
		rows := sqlmock.NewRows(propertyColumns).
			AddRow("id-2", "imovirtual", "ext-2", "T3", 200.0, "Porto", nil, nil, "https://x/2", time.Now(), time.Now(), deletedAt)

		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE source = \\? AND external_id = \\?").
			WithArgs("imovirtual", "ext-2", 2).
			WillReturnRows(rows)

		entity, err := store.FindByKey(context.Background(), models.SourceImovirtual, "ext-2")
		require.NoError(t, err)
		require.NotNil(t, entity)
		assert.True(t, entity.Delisted())
	})

	t.Run("Absent", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE source = \\? AND external_id = \\?").
			WithArgs("imovirtual", "nope", 2).
			WillReturnRows(sqlmock.NewRows(propertyColumns))

		entity, err := store.FindByKey(context.Background(), models.SourceImovirtual, "nope")
		require.NoError(t, err)
		assert.Nil(t, entity)
	})

	t.Run("Duplicate key fails loudly", func(t *testing.T) {
		rows := sqlmock.NewRows(propertyColumns).
			AddRow("id-1", "imovirtual", "dup", "a", 1.0, "", nil, nil, "", time.Now(), time.Now(), nil).
			AddRow("id-2", "imovirtual", "dup", "b", 2.0, "", nil, nil, "", time.Now(), time.Now(), nil)

		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE source = \\? AND external_id = \\?").
			WithArgs("imovirtual", "dup", 2).
			WillReturnRows(rows)

		entity, err := store.FindByKey(context.Background(), models.SourceImovirtual, "dup")
		assert.Error(t, err)
		assert.Nil(t, entity)
		assert.Contains(t, err.Error(), "integrity")
	})
}

func TestStore_FindActiveExcluding(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	t.Run("Excludes ids and tombstones", func(t *testing.T) {
		rows := sqlmock.NewRows(propertyColumns).
			AddRow("id-c", "imovirtual", "c", "gone", 300.0, "Faro", nil, nil, "https://x/c", time.Now(), time.Now(), nil)

		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE id NOT IN \\(\\?,\\?\\) AND `properties`\\.`deleted_at` IS NULL").
			WithArgs("id-a", "id-b").
			WillReturnRows(rows)

		out, err := store.FindActiveExcluding(context.Background(), []string{"id-a", "id-b"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "id-c", out[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty exclusion returns all active", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `properties` WHERE `properties`\\.`deleted_at` IS NULL").
			WillReturnRows(sqlmock.NewRows(propertyColumns))

		out, err := store.FindActiveExcluding(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestStore_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `properties`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entity := models.PropertyEntity{
		Source:      models.SourceIdealista,
		ExternalID:  "ext-1",
		Description: "new",
		Price:       500,
	}

	err := store.Insert(context.Background(), &entity)
	require.NoError(t, err)
	assert.NotEmpty(t, entity.ID, "BeforeCreate assigns the id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateFields(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	t.Run("Applies columns", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `properties` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.UpdateFields(context.Background(), "id-1", map[string]any{"price": 120.0})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No columns is a no-op", func(t *testing.T) {
		err := store.UpdateFields(context.Background(), "id-1", nil)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_SoftDeleteAndRestore(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	// Soft delete writes the tombstone instead of removing the row.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `properties` SET `deleted_at`=\\? WHERE id = \\? AND `properties`\\.`deleted_at` IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SoftDelete(context.Background(), "id-1")
	require.NoError(t, err)

	// Restore clears it again.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `properties` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.Restore(context.Background(), "id-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListDelisted(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows(propertyColumns).
		AddRow("id-d", "idealista", "d", "gone", 100.0, "", nil, nil, "", time.Now(), time.Now(), time.Now())

	mock.ExpectQuery("SELECT \\* FROM `properties` WHERE deleted_at IS NOT NULL").
		WillReturnRows(rows)

	out, err := store.ListDelisted(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.StatusDelisted, out[0].Status())
}

package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Generation{}))
	return db
}

func TestGenerationLifecycle(t *testing.T) {
	db := setupModelsTestDB(t)
	key := "generated/grid/2024/03/a.docx"
	g := Generation{TemplateKind: "grid", Pages: 2, Format: "docx", FileName: "Grid_2p.docx", StorageKey: &key}

	require.NoError(t, db.Create(&g).Error)
	_, err := uuid.Parse(g.ID)
	assert.NoError(t, err)
	assert.True(t, g.Archived())
	assert.Equal(t, "/generations/"+g.ID+"/download", g.GetDownloadURL())

	t.Run("OtherFieldsAreImmutable", func(t *testing.T) {
		err := db.Model(&g).Update("pages", 3).Error
		assert.ErrorIs(t, err, ErrGenerationImmutable)
	})

	t.Run("StorageKeyCanBeCleared", func(t *testing.T) {
		require.NoError(t, db.Model(&g).Update("storage_key", nil).Error)

		var reloaded Generation
		require.NoError(t, db.First(&reloaded, "id = ?", g.ID).Error)
		assert.False(t, reloaded.Archived())
		assert.Equal(t, "", reloaded.GetDownloadURL())
		assert.Equal(t, 2, reloaded.Pages)
	})
}

package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&User{}, &Recipe{}, &Ingredient{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestRecipeFilterNormalize(t *testing.T) {
	veg := true
	f := RecipeFilter{
		Vegetarian:        &veg,
		IncludeIngredient: strPtr("  Potato "),
		ExcludeIngredient: strPtr("   "),
		InstructionText:   strPtr(""),
	}

	n := f.Normalize()
	require.NotNil(t, n.IncludeIngredient)
	assert.Equal(t, "Potato", *n.IncludeIngredient)
	assert.Nil(t, n.ExcludeIngredient)
	assert.Nil(t, n.InstructionText)
	assert.Equal(t, &veg, n.Vegetarian)
	assert.Equal(t, "  Potato ", *f.IncludeIngredient, "Normalize must not modify the receiver")

	assert.False(t, f.IsEmpty())
	assert.True(t, RecipeFilter{}.IsEmpty())
	assert.True(t, RecipeFilter{IncludeIngredient: strPtr(" \t")}.IsEmpty())

	servings := 0
	assert.False(t, RecipeFilter{Servings: &servings}.IsEmpty())
}

func TestStringArray(t *testing.T) {
	var empty StringArray
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var a StringArray
	require.NoError(t, a.Scan([]byte(`["ROLE_USER","ROLE_ADMIN"]`)))
	assert.Equal(t, StringArray{"ROLE_USER", "ROLE_ADMIN"}, a)
	assert.True(t, a.Contains("ROLE_ADMIN"))
	assert.False(t, a.Contains("ROLE_ROOT"))

	var b StringArray
	require.NoError(t, b.Scan(`["x"]`))
	assert.Equal(t, StringArray{"x"}, b)

	var c StringArray
	require.NoError(t, c.Scan(nil))
	assert.Empty(t, c)

	assert.Error(t, c.Scan(42))
}

func TestCreateAssignsIDs(t *testing.T) {
	db := setupTestDB(t)

	recipe := &Recipe{
		Name:         "Soup",
		Servings:     2,
		Instructions: "Boil.",
		CreatedBy:    "alice",
		Ingredients:  []Ingredient{{Name: "Water"}, {Name: "Salt", Position: 1}},
	}
	require.NoError(t, db.Create(recipe).Error)
	assert.NotEqual(t, uuid.Nil, recipe.ID)
	for _, ing := range recipe.Ingredients {
		assert.NotEqual(t, uuid.Nil, ing.ID)
		assert.Equal(t, recipe.ID, ing.RecipeID)
	}

	user := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Roles: StringArray{RoleUser}}
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	var loaded User
	require.NoError(t, db.First(&loaded, "username = ?", "alice").Error)
	assert.Equal(t, StringArray{RoleUser}, loaded.Roles)
	assert.Equal(t, []string{"Water", "Salt"}, recipe.IngredientNames())

	var ing Ingredient
	require.NoError(t, db.First(&ing, "name = ?", "Salt").Error)
	assert.Equal(t, "salt", ing.NameKey)
}

func TestSearchKeyFoldsUnicode(t *testing.T) {
	assert.Equal(t, "jalapeño", SearchKey("JALAPEÑO"))
	assert.Equal(t, "crème brûlée", SearchKey("Crème BRÛLÉE"))
}

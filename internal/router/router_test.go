package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/metrics"
	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/router"
	"github.com/pageza/recipebook/backend/internal/service"
	th "github.com/pageza/recipebook/backend/internal/testhelpers"
	"github.com/pageza/recipebook/backend/internal/types"
)

type testAPI struct {
	engine  *gin.Engine
	authSvc *service.AuthService
	reg     *prometheus.Registry
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := th.SetupSQLiteDatabase(t)
	log := logger.NewNoopLogger()
	reg := prometheus.NewRegistry()

	authSvc := service.NewAuthService(repository.NewUserStore(db), "test-secret", time.Hour, log)
	recipeSvc := service.NewRecipeService(
		repository.NewRecipeStore(db),
		auth.NewGuard(auth.HasRole("ROLE_ADMIN")),
		metrics.NewPrometheus(reg, log),
		log,
	)

	engine := router.SetupRouter(router.Dependencies{
		AuthService:   authSvc,
		RecipeService: recipeSvc,
		HTTPMetrics:   metrics.NewHTTP(reg),
		Logger:        log,
		CORSOrigins:   []string{"http://localhost:5173"},
	})
	return &testAPI{engine: engine, authSvc: authSvc, reg: reg}
}

func (a *testAPI) token(t *testing.T, username string, roles ...string) string {
	t.Helper()
	token, err := a.authSvc.GenerateToken(&models.User{
		ID:       uuid.New(),
		Username: username,
		Roles:    append(models.StringArray{models.RoleUser}, roles...),
	})
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func recipePayload(name string, vegetarian bool, servings int, ingredients ...string) map[string]interface{} {
	ings := make([]map[string]string, len(ingredients))
	for i, n := range ingredients {
		ings[i] = map[string]string{"name": n, "amount": "1", "unit": "piece"}
	}
	return map[string]interface{}{
		"name":         name,
		"description":  "test",
		"vegetarian":   vegetarian,
		"servings":     servings,
		"instructions": "Cook it.",
		"ingredients":  ings,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSignupAndLogin(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "User registered successfully!", decode[types.MessageResponse](t, w).Message)

	w = a.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bo", "email": "not-an-email", "password": "x",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[types.ErrorResponse](t, w)
	assert.Contains(t, body.Errors, "username")
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "password")

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[types.TokenResponse](t, w)
	assert.Equal(t, "Bearer", login.Type)
	assert.Equal(t, []string{models.RoleUser}, login.Roles)

	w = a.do(t, http.MethodGet, "/api/v1/recipes", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeRoutesRequireToken(t *testing.T) {
	a := setupAPI(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/recipes"},
		{http.MethodGet, "/api/v1/recipes/my-recipes"},
		{http.MethodGet, "/api/v1/recipes/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/recipes"},
		{http.MethodPut, "/api/v1/recipes/" + uuid.NewString()},
		{http.MethodDelete, "/api/v1/recipes/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/recipes/filter"},
	} {
		w := a.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRecipeLifecycle(t *testing.T) {
	a := setupAPI(t)
	alice := a.token(t, "alice")
	bob := a.token(t, "bob")
	admin := a.token(t, "root", "ROLE_ADMIN")

	payload := recipePayload("Potato Soup", true, 4, "Potato", "Leek")
	payload["created_by"] = "mallory"
	w := a.do(t, http.MethodPost, "/api/v1/recipes", alice, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Recipe](t, w)
	assert.Equal(t, "alice", created.CreatedBy)
	assert.Equal(t, []string{"Potato", "Leek"}, created.IngredientNames())
	path := "/api/v1/recipes/" + created.ID.String()

	w = a.do(t, http.MethodGet, path, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Potato Soup", decode[models.Recipe](t, w).Name)

	w = a.do(t, http.MethodPut, path, bob, recipePayload("Stolen Soup", true, 2, "Water"))
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, decode[types.ErrorResponse](t, w).Status)

	w = a.do(t, http.MethodGet, path, alice, nil)
	assert.Equal(t, "Potato Soup", decode[models.Recipe](t, w).Name)

	w = a.do(t, http.MethodPut, path, admin, recipePayload("Admin Soup", true, 2, "Water"))
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Recipe](t, w)
	assert.Equal(t, "alice", updated.CreatedBy)
	assert.Equal(t, []string{"Water"}, updated.IngredientNames())

	w = a.do(t, http.MethodGet, "/api/v1/recipes/my-recipes", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Recipe](t, w), 1)

	w = a.do(t, http.MethodGet, "/api/v1/recipes/my-recipes", bob, nil)
	assert.Empty(t, decode[[]models.Recipe](t, w))

	w = a.do(t, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodGet, path, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[types.ErrorResponse](t, w).Message, created.ID.String())

	w = a.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, float64(1), counterValue(t, a.reg, "recipe_created_total"))
	assert.Equal(t, float64(1), counterValue(t, a.reg, "recipe_updated_total"))
	assert.Equal(t, float64(1), counterValue(t, a.reg, "recipe_deleted_total"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestRecipeValidation(t *testing.T) {
	a := setupAPI(t)
	alice := a.token(t, "alice")

	w := a.do(t, http.MethodPost, "/api/v1/recipes", alice, map[string]interface{}{
		"name":        " ",
		"ingredients": []map[string]string{{"name": ""}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[types.ErrorResponse](t, w)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	for _, field := range []string{"name", "vegetarian", "servings", "instructions", "ingredients[0].name"} {
		assert.Contains(t, body.Errors, field)
	}

	w = a.do(t, http.MethodPost, "/api/v1/recipes", alice, recipePayload("Soup", true, 0, "Water"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[types.ErrorResponse](t, w).Errors, "servings")

	payload := recipePayload("Soup", true, 2, "Water")
	payload["servings"] = "four"
	w = a.do(t, http.MethodPost, "/api/v1/recipes", alice, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[types.ErrorResponse](t, w)
	assert.Equal(t, "Malformed recipe request", body.Message)
	assert.Equal(t, "must be of type int", body.Errors["servings"])

	payload = recipePayload("Soup", true, 2, "Water")
	payload["cooking_time"] = -5
	delete(payload, "vegetarian")
	w = a.do(t, http.MethodPost, "/api/v1/recipes", alice, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[types.ErrorResponse](t, w)
	assert.Equal(t, "validation failed", body.Message)
	assert.Equal(t, map[string]string{
		"vegetarian":   "vegetarian is required",
		"cooking_time": "must be at least 0",
	}, body.Errors)

	payload = recipePayload("Soup", false, 2)
	w = a.do(t, http.MethodPost, "/api/v1/recipes", alice, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must have at least 1 items", decode[types.ErrorResponse](t, w).Errors["ingredients"])

	w = a.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+alice)
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterEndpoint(t *testing.T) {
	a := setupAPI(t)
	alice := a.token(t, "alice")

	for _, p := range []map[string]interface{}{
		recipePayload("A", true, 4, "Potato"),
		recipePayload("B", false, 4, "Chicken"),
	} {
		w := a.do(t, http.MethodPost, "/api/v1/recipes", alice, p)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	names := func(w *httptest.ResponseRecorder) []string {
		var out []string
		for _, r := range decode[[]models.Recipe](t, w) {
			out = append(out, r.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter interface{}
		want   []string
	}{
		{"vegetarian", map[string]interface{}{"vegetarian": true}, []string{"A"}},
		{"servings", map[string]interface{}{"servings": 4}, []string{"A", "B"}},
		{"both", map[string]interface{}{"vegetarian": true, "servings": 4}, []string{"A"}},
		{"include", map[string]interface{}{"include_ingredient": "potato"}, []string{"A"}},
		{"exclude", map[string]interface{}{"exclude_ingredient": "Potato"}, []string{"B"}},
		{"blank", map[string]interface{}{"instruction_text": "  "}, []string{"A", "B"}},
		{"no body", nil, []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/v1/recipes/filter", alice, tt.filter)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.ElementsMatch(t, tt.want, names(w))
		})
	}
}

func TestMetricsRecordedPerRoute(t *testing.T) {
	a := setupAPI(t)
	alice := a.token(t, "alice")

	a.do(t, http.MethodGet, "/api/v1/recipes", alice, nil)
	a.do(t, http.MethodPost, "/api/v1/recipes/filter", alice, map[string]interface{}{"servings": 2, "vegetarian": true})

	count, err := testutil.GatherAndCount(a.reg, "recipe_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(a.reg, "recipe_filter_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

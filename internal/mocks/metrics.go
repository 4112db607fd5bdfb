package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebook/backend/internal/metrics"
)

var _ metrics.Recorder = (*MockRecorder)(nil)

// MockRecorder records metric calls. Set expectations with On, or use
// NewPermissiveRecorder to accept everything.
type MockRecorder struct {
	mock.Mock
}

// NewPermissiveRecorder returns a recorder that accepts any call.
func NewPermissiveRecorder() *MockRecorder {
	m := &MockRecorder{}
	m.On("RecipeCreated").Maybe()
	m.On("RecipeUpdated").Maybe()
	m.On("RecipeDeleted").Maybe()
	m.On("RecipeQuery", mock.Anything).Maybe()
	m.On("FilterUsed", mock.Anything).Maybe()
	m.On("FilterDuration", mock.Anything).Maybe()
	m.On("RecipeCount", mock.Anything).Maybe()
	return m
}

func (m *MockRecorder) RecipeCreated()                 { m.Called() }
func (m *MockRecorder) RecipeUpdated()                 { m.Called() }
func (m *MockRecorder) RecipeDeleted()                 { m.Called() }
func (m *MockRecorder) RecipeQuery(kind string)        { m.Called(kind) }
func (m *MockRecorder) FilterUsed(dimension string)    { m.Called(dimension) }
func (m *MockRecorder) FilterDuration(d time.Duration) { m.Called(d) }
func (m *MockRecorder) RecipeCount(n int64)            { m.Called(n) }

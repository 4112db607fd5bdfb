package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebook/backend/internal/models"
)

// Filter dimensions, in evaluation order. The names are the metric labels.
const (
	DimensionVegetarian        = "vegetarian"
	DimensionServings          = "servings"
	DimensionIncludeIngredient = "includeIngredient"
	DimensionExcludeIngredient = "excludeIngredient"
	DimensionInstructionText   = "instructionText"
)

// recipeSet keeps recipes by id in first-seen order.
type recipeSet struct {
	order []uuid.UUID
	byID  map[uuid.UUID]models.Recipe
}

func newRecipeSet(recipes []models.Recipe) *recipeSet {
	s := &recipeSet{byID: make(map[uuid.UUID]models.Recipe, len(recipes))}
	for _, r := range recipes {
		if _, dup := s.byID[r.ID]; dup {
			continue
		}
		s.order = append(s.order, r.ID)
		s.byID[r.ID] = r
	}
	return s
}

// retain drops every member whose id is absent from matches.
func (s *recipeSet) retain(matches []models.Recipe) {
	keep := make(map[uuid.UUID]struct{}, len(matches))
	for _, r := range matches {
		keep[r.ID] = struct{}{}
	}
	order := s.order[:0]
	for _, id := range s.order {
		if _, ok := keep[id]; ok {
			order = append(order, id)
			continue
		}
		delete(s.byID, id)
	}
	s.order = order
}

func (s *recipeSet) list() []models.Recipe {
	out := make([]models.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// accumulator is either unseeded (no dimension applied yet) or seeded with the
// running intersection.
type accumulator interface {
	combine(matches []models.Recipe) accumulator
	result() []models.Recipe
}

type unseeded struct{}

func (unseeded) combine(matches []models.Recipe) accumulator {
	return seeded{set: newRecipeSet(matches)}
}

func (unseeded) result() []models.Recipe { return []models.Recipe{} }

type seeded struct {
	set *recipeSet
}

func (s seeded) combine(matches []models.Recipe) accumulator {
	s.set.retain(matches)
	return s
}

func (s seeded) result() []models.Recipe { return s.set.list() }

// criterion is one present filter dimension bound to its store lookup.
type criterion struct {
	dimension string
	lookup    func(ctx context.Context) ([]models.Recipe, error)
}

func (s *RecipeService) criteria(f models.RecipeFilter) []criterion {
	var out []criterion
	if f.Vegetarian != nil {
		v := *f.Vegetarian
		out = append(out, criterion{DimensionVegetarian, func(ctx context.Context) ([]models.Recipe, error) {
			return s.store.FindByVegetarian(ctx, v)
		}})
	}
	if f.Servings != nil {
		n := *f.Servings
		out = append(out, criterion{DimensionServings, func(ctx context.Context) ([]models.Recipe, error) {
			return s.store.FindByServings(ctx, n)
		}})
	}
	if f.IncludeIngredient != nil {
		name := *f.IncludeIngredient
		out = append(out, criterion{DimensionIncludeIngredient, func(ctx context.Context) ([]models.Recipe, error) {
			return s.store.FindByIngredientNameContaining(ctx, name)
		}})
	}
	if f.ExcludeIngredient != nil {
		name := *f.ExcludeIngredient
		out = append(out, criterion{DimensionExcludeIngredient, func(ctx context.Context) ([]models.Recipe, error) {
			return s.store.FindByIngredientNameNotContaining(ctx, name)
		}})
	}
	if f.InstructionText != nil {
		text := *f.InstructionText
		out = append(out, criterion{DimensionInstructionText, func(ctx context.Context) ([]models.Recipe, error) {
			return s.store.FindByInstructionsContaining(ctx, text)
		}})
	}
	return out
}

// Filter returns the recipes satisfying every present criterion. With no criteria it
// returns every recipe. Result order is unspecified.
func (s *RecipeService) Filter(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	start := time.Now()
	defer func() { s.metrics.FilterDuration(time.Since(start)) }()

	filter = filter.Normalize()
	if filter.IsEmpty() {
		return s.GetAll(ctx)
	}

	criteria := s.criteria(filter)
	for _, c := range criteria {
		s.metrics.FilterUsed(c.dimension)
	}

	var acc accumulator = unseeded{}
	for _, c := range criteria {
		matches, err := c.lookup(ctx)
		if err != nil {
			return nil, err
		}
		acc = acc.combine(matches)
	}
	return acc.result(), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/model"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// GormRecipeStore is the datastore client for recipe rows
type GormRecipeStore struct {
	db *gorm.DB
}

// NewGormRecipeStore creates a store over db
func NewGormRecipeStore(db *gorm.DB) *GormRecipeStore {
	return &GormRecipeStore{db: db}
}

// Create inserts one row
func (s *GormRecipeStore) Create(ctx context.Context, row *model.Recipe) error {
	return s.db.WithContext(ctx).Create(row).Error
}

// ListByOwner returns owner's rows, newest first
func (s *GormRecipeStore) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Recipe, error) {
	var rows []model.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetForOwner returns the row with id if owner owns it
func (s *GormRecipeStore) GetForOwner(ctx context.Context, id, owner uuid.UUID) (*model.Recipe, error) {
	var row model.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RecipeService maps recipe records to datastore rows and back
type RecipeService struct {
	store   RecipeStore
	images  ImageURLResolver
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRecipeService creates a new RecipeService instance. images may be nil.
func NewRecipeService(store RecipeStore, images ImageURLResolver, logger *zap.Logger, m *metrics.Metrics) *RecipeService {
	return &RecipeService{
		store:   store,
		images:  images,
		logger:  logger,
		metrics: m,
	}
}

// ToRow applies the field mapping from a recipe record to its row
func ToRow(recipe types.Recipe, owner uuid.UUID, dietaryPreferences []string, createdAt time.Time) *model.Recipe {
	prefs := append([]string{}, dietaryPreferences...)
	return &model.Recipe{
		ID:                 recipe.ID,
		UserID:             owner,
		Title:              recipe.Title,
		Description:        recipe.Description,
		Ingredients:        model.JSONBStringArray(recipe.Ingredients),
		Instructions:       model.JSONBStringArray(recipe.Instructions),
		CookingTime:        recipe.CookingTime,
		Image:              recipe.Image,
		DietaryPreferences: prefs,
		CreatedAt:          createdAt,
	}
}

// FromRow is the inverse of ToRow
func FromRow(row model.Recipe) types.Recipe {
	createdAt := row.CreatedAt
	return types.Recipe{
		ID:                 row.ID,
		Title:              row.Title,
		Description:        row.Description,
		Ingredients:        []string(row.Ingredients),
		Instructions:       []string(row.Instructions),
		CookingTime:        row.CookingTime,
		Image:              row.Image,
		DietaryPreferences: append([]string{}, row.DietaryPreferences...),
		CreatedAt:          &createdAt,
	}
}

// Persist writes every recipe as its own row. A failed row does not stop the
// others; all failures are returned joined, each wrapping ErrPersistenceFailure.
func (s *RecipeService) Persist(ctx context.Context, owner uuid.UUID, recipes []types.Recipe, dietaryPreferences []string, createdAt time.Time) error {
	var errs []error
	for _, recipe := range recipes {
		if err := s.store.Create(ctx, ToRow(recipe, owner, dietaryPreferences, createdAt)); err != nil {
			s.metrics.PersistFailures.Inc()
			s.logger.Error("failed to persist recipe",
				zap.String("recipe_id", recipe.ID.String()),
				zap.String("owner_id", owner.String()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%w: recipe %s: %w", ErrPersistenceFailure, recipe.ID, err))
		}
	}
	return errors.Join(errs...)
}

// History lists owner's recipes, newest first
func (s *RecipeService) History(ctx context.Context, owner uuid.UUID) ([]types.Recipe, error) {
	rows, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]types.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, s.present(ctx, row))
	}
	return recipes, nil
}

// Get returns one of owner's recipes. Malformed, absent and foreign IDs all
// yield ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, owner uuid.UUID, id string) (*types.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrRecipeNotFound
	}

	row, err := s.store.GetForOwner(ctx, recipeID, owner)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	recipe := s.present(ctx, *row)
	return &recipe, nil
}

func (s *RecipeService) present(ctx context.Context, row model.Recipe) types.Recipe {
	recipe := FromRow(row)
	if s.images != nil && recipe.Image != "" {
		recipe.Image = s.images.Resolve(ctx, recipe.Image)
	}
	return recipe
}

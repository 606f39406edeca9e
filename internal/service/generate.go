package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// GenerateResult is the batch handed back to the caller
type GenerateResult struct {
	Recipes  []types.Recipe
	Note     string
	Fallback bool
}

// GenerationPipeline turns an ingredient list into a stored batch of recipes:
// authenticate, validate, prompt, generate, normalize, fall back on failure,
// persist, return.
type GenerationPipeline struct {
	auth      Authenticator
	client    GenerationClient
	persister RecipePersister
	validate  *validator.Validate
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewGenerationPipeline wires a pipeline from its collaborators
func NewGenerationPipeline(auth Authenticator, client GenerationClient, persister RecipePersister, logger *zap.Logger, m *metrics.Metrics) *GenerationPipeline {
	return &GenerationPipeline{
		auth:      auth,
		client:    client,
		persister: persister,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate runs the pipeline for the request body. Only ErrUnauthenticated
// and ErrInvalidInput are returned for expected conditions; provider,
// parsing and persistence failures are absorbed.
func (p *GenerationPipeline) Generate(ctx context.Context, creds Credentials, body []byte) (*GenerateResult, error) {
	identity := p.auth.Resolve(ctx, creds)
	if !identity.Resolved {
		return nil, ErrUnauthenticated
	}

	req, err := p.ParseRequest(body)
	if err != nil {
		return nil, err
	}

	// A started run completes even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	log := p.logger.With(zap.String("owner_id", identity.UserID.String()))

	result := &GenerateResult{}
	recipes, err := p.generate(ctx, BuildRecipePrompt(req.Ingredients, req.DietaryPreferences))
	if err != nil {
		reason := metrics.ReasonProviderUnavailable
		if errors.Is(err, ErrMalformedGenerationResponse) {
			reason = metrics.ReasonMalformedResponse
		}
		log.Warn("serving fallback recipes", zap.String("reason", reason), zap.Error(err))
		p.metrics.FallbacksTotal.WithLabelValues(reason).Inc()
		p.metrics.GenerationsTotal.WithLabelValues(metrics.SourceFallback).Inc()

		result.Recipes = FallbackRecipes()
		result.Note = FallbackNote
		result.Fallback = true
	} else {
		p.metrics.GenerationsTotal.WithLabelValues(metrics.SourceProvider).Inc()
		result.Recipes = recipes
	}

	prefs := req.DietaryPreferences
	if prefs == nil {
		prefs = []string{}
	}
	if err := p.persister.Persist(ctx, identity.UserID, result.Recipes, prefs, p.now()); err != nil {
		log.Error("recipe batch partially persisted", zap.Error(err))
	}

	return result, nil
}

// ParseRequest decodes and validates a generation request body
func (p *GenerationPipeline) ParseRequest(body []byte) (*types.GenerateRequest, error) {
	var req types.GenerateRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: ingredients are required and must be an array of strings: %w", ErrInvalidInput, err)
	}
	if err := p.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &req, nil
}

// generate calls the provider and normalizes its reply to a full batch
func (p *GenerationPipeline) generate(ctx context.Context, prompt string) ([]types.Recipe, error) {
	raw, err := p.client.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrProviderUnavailable) {
			err = fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
		}
		return nil, err
	}

	recipes, err := NormalizeRecipes(raw)
	if err != nil {
		return nil, err
	}
	if len(recipes) < TargetRecipeCount {
		return nil, fmt.Errorf("%w: got %d recipes, want %d", ErrMalformedGenerationResponse, len(recipes), TargetRecipeCount)
	}
	return recipes[:TargetRecipeCount], nil
}

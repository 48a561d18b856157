package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/db"
)

// ValidateConditionsResult reports the stored conditions' health
type ValidateConditionsResult struct {
	ConditionCount int
	Errors         []string
}

// ValidateConditionsStore defines the database operations needed for
// validating conditions
type ValidateConditionsStore interface {
	GetConditions(ctx context.Context) ([]db.Condition, error)
}

// ValidateConditions decodes and cross-checks the stored scheduling
// conditions without running an allocation. Shape problems surface as
// an error; blocking contradictions are returned in the result.
func ValidateConditions(
	ctx context.Context,
	database ValidateConditionsStore,
	logger *zap.Logger,
) (*ValidateConditionsResult, error) {
	logger.Debug("Fetching conditions")
	records, err := database.GetConditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}
	logger.Debug("Found condition records", zap.Int("count", len(records)))

	conditions, err := db.DecodeConditions(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode conditions: %w", err)
	}

	registry, err := allocator.NormalizeConditions(conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize conditions: %w", err)
	}

	result := &ValidateConditionsResult{
		ConditionCount: len(conditions),
		Errors:         registry.Validate(),
	}

	if len(result.Errors) > 0 {
		logger.Warn("Conditions have blocking errors", zap.Strings("errors", result.Errors))
	} else {
		logger.Info("Conditions are valid", zap.Int("count", result.ConditionCount))
	}

	return result, nil
}

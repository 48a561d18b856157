package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/model"
	"github.com/dnminh/restaff/pkg/db"
)

// ListRoster returns the full roster as engine employees, sorted by id
func ListRoster(ctx context.Context, database db.RosterStore, logger *zap.Logger) ([]model.Employee, error) {
	logger.Debug("Fetching roster")
	records, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	logger.Debug("Found employees", zap.Int("count", len(records)))

	return employeeModels(records), nil
}

package collector

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collector gathers the records of one category.
type Collector struct {
	profile *Profile
	exec    Executor
	logger  *zap.Logger
}

// New creates a Collector for profile backed by exec.
func New(profile *Profile, exec Executor, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		profile: profile,
		exec:    exec,
		logger:  logger.With(zap.String("category", string(profile.Category))),
	}
}

// Category returns the category this collector covers.
func (c *Collector) Category() Category { return c.profile.Category }

// Fetch runs the profile's query and assembles its output.
// A successful run with no output yields no records and no error.
func (c *Collector) Fetch(ctx context.Context) ([]Record, error) {
	lines, err := c.exec.Run(ctx, c.profile.Command)
	if err != nil {
		if !errors.Is(err, ErrCommandFailed) {
			err = fmt.Errorf("%w: %w", ErrCommandFailed, err)
		}
		return nil, fmt.Errorf("query %s: %w", c.profile.Category, err)
	}
	return c.profile.Assemble(lines, c.logger), nil
}

// FetchInfo is Fetch with the error logged instead of returned.
// A failed query yields an empty result.
func (c *Collector) FetchInfo(ctx context.Context) []Record {
	records, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Error("failed to query inventory", zap.String("command", c.profile.Command), zap.Error(err))
		return nil
	}
	return records
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
)

func TestCacheRepositoryWithoutClientIsEmpty(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "schedule:sessions:c-1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "schedule:sessions:c-1", []string{"a"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "schedule:sessions:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

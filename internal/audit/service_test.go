package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryDefaults(t *testing.T) {
	query, args := buildQuery(Query{})

	assert.True(t, strings.HasSuffix(query, "ORDER BY created_at DESC LIMIT $1 OFFSET $2"))
	assert.Equal(t, []any{50, 0}, args)
}

func TestBuildQueryFilters(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args := buildQuery(Query{
		Action:       ActionClone,
		ResourceType: "permit_rule",
		StartDate:    &start,
		Limit:        10_000,
		Offset:       -4,
	})

	assert.Contains(t, query, "AND action = $1")
	assert.Contains(t, query, "AND resource_type = $2")
	assert.Contains(t, query, "AND created_at >= $3")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{"clone", "permit_rule", start, maxLimit, 0}, args)
}

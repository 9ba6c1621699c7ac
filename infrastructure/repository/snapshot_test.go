package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xrack/sales-insights-api/internal/domain"
)

func TestSnapshotRepositoryReplace(t *testing.T) {
	repo := NewSnapshotRepository()

	assert.Nil(t, repo.Current())

	first := &domain.Snapshot{ID: "a", LoadedAt: time.Now()}
	repo.Replace(first)
	assert.Same(t, first, repo.Current())

	// A troca é total: leitores passam a ver o snapshot novo, e o antigo
	// permanece intacto para quem já o obteve.
	second := &domain.Snapshot{ID: "b", LoadedAt: time.Now()}
	repo.Replace(second)
	assert.Same(t, second, repo.Current())
	assert.Equal(t, "a", first.ID)
}

package repository

import (
	"sync"

	"github.com/xrack/sales-insights-api/internal/domain"
)

// SnapshotRepository guarda o snapshot corrente das vendas. O repositório
// é intencionalmente efêmero: os dados vivem só em memória e são
// reconstruídos a cada carga da planilha.
type SnapshotRepository interface {
	// Current retorna o snapshot corrente, ou nil quando nenhuma carga
	// foi concluída com sucesso ainda.
	Current() *domain.Snapshot
	// Replace troca o snapshot corrente de forma atômica. Leitores que
	// obtiveram o snapshot anterior continuam enxergando-o íntegro.
	Replace(snapshot *domain.Snapshot)
}

type snapshotRepository struct {
	mu      sync.RWMutex
	current *domain.Snapshot
}

// NewSnapshotRepository cria o repositório em memória.
func NewSnapshotRepository() SnapshotRepository {
	return &snapshotRepository{}
}

func (r *snapshotRepository) Current() *domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

func (r *snapshotRepository) Replace(snapshot *domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = snapshot
}

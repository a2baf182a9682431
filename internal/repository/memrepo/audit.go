package memrepo

import (
	"context"

	"taskboard/internal/domain"
)

type AuditRepository struct {
	s *Store
}

func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAuditID++
	log.ID = r.s.nextAuditID
	log.CreatedAt = r.s.stamp()
	if log.Details == nil {
		log.Details = map[string]interface{}{}
	}
	r.s.audit = append(r.s.audit, *log)
	return nil
}

func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.AuditLog, 0, min(limit, len(r.s.audit)))
	for i := len(r.s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		entry := r.s.audit[i]
		out = append(out, &entry)
	}
	return out, nil
}

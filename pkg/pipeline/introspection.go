package pipeline

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Builds         uint64 `json:"builds"`
	RepositoryType string `json:"repository_type"`
	UsePattern     bool   `json:"use_reference_pattern"`
	Reference      string `json:"reference"`
	SortOrder      string `json:"sort_order"`
	Delimiter      string `json:"delimiter"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		Builds:         s.builds,
		RepositoryType: repoType,
		UsePattern:     s.settings.UseReferencePattern,
		Reference:      s.settings.ReferenceKeyOrPattern,
		SortOrder:      string(s.settings.DefaultSortOrder),
		Delimiter:      s.settings.Delimiter.String(),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "timeline-service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)

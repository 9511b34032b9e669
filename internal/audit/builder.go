package audit

import (
	"fmt"

	"github.com/ryancicak/trino-databricks-authentication/internal/config"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// Build constructs the auditor selected in the configuration.
func Build(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "", "memory":
		return NewInMemoryAuditor(), nil
	case "file":
		auditor, err := NewFileAuditor(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("building file auditor: %w", err)
		}
		return auditor, nil
	default:
		return nil, fmt.Errorf("unknown audit type %q", cfg.Type)
	}
}

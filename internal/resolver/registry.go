package resolver

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/ryancicak/trino-databricks-authentication/internal/config"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// Build constructs the configured resolver. Construction fails fast on
// invalid settings (e.g. a missing workspace host) instead of deferring the
// error to the first connection attempt.
func Build(ctx context.Context, cfg config.ResolverConfig) (core.Resolver, error) {
	switch cfg.Type {
	case "databricks":
		var dbx DatabricksConfig
		if err := decodeInline(cfg.Config, &dbx); err != nil {
			return nil, fmt.Errorf("decoding databricks resolver %q config: %w", cfg.Name, err)
		}
		res, err := NewDatabricksResolver(cfg.Name, dbx)
		if err != nil {
			return nil, fmt.Errorf("building databricks resolver %q: %w", cfg.Name, err)
		}
		return res, nil

	case "oidc":
		var oc OIDCConfig
		if err := decodeInline(cfg.Config, &oc); err != nil {
			return nil, fmt.Errorf("decoding oidc resolver %q config: %w", cfg.Name, err)
		}
		res, err := NewOIDCResolver(ctx, cfg.Name, oc)
		if err != nil {
			return nil, fmt.Errorf("building oidc resolver %q: %w", cfg.Name, err)
		}
		return res, nil

	case "static":
		var sc StaticConfig
		if err := decodeInline(cfg.Config, &sc); err != nil {
			return nil, fmt.Errorf("decoding static resolver %q config: %w", cfg.Name, err)
		}
		return NewStaticResolver(cfg.Name, sc), nil

	default:
		return nil, fmt.Errorf("unknown resolver type %q for resolver %q", cfg.Type, cfg.Name)
	}
}

func decodeInline(raw map[string]any, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      dest,
		ErrorUnused: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

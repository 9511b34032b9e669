package resolver

import (
	"context"
	"testing"

	"github.com/ryancicak/trino-databricks-authentication/internal/config"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ResolverConfig
		wantErr bool
	}{
		{
			name: "Static OK",
			cfg: config.ResolverConfig{
				Name: "dev",
				Type: "static",
				Config: map[string]any{
					"tokens": map[string]string{"tok-1": "alice@co.com"},
				},
			},
		},
		{
			name: "Databricks OK",
			cfg: config.ResolverConfig{
				Name: "dbx",
				Type: "databricks",
				Config: map[string]any{
					"host": "https://ws.cloud.databricks.com",
				},
			},
		},
		{
			name: "Databricks Missing Host",
			cfg: config.ResolverConfig{
				Name:   "dbx",
				Type:   "databricks",
				Config: map[string]any{},
			},
			wantErr: true,
		},
		{
			name:    "Unknown Type",
			cfg:     config.ResolverConfig{Name: "x", Type: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && res.Name() != tt.cfg.Name {
				t.Errorf("Name() = %q, want %q", res.Name(), tt.cfg.Name)
			}
		})
	}
}

func TestStaticResolver(t *testing.T) {
	res := NewStaticResolver("dev", StaticConfig{
		Tokens: map[string]string{"tok-1": "alice@co.com"},
	})

	identity, err := res.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity != "alice@co.com" {
		t.Errorf("identity = %q, want %q", identity, "alice@co.com")
	}

	_, err = res.Resolve(context.Background(), "tok-unknown")
	if got := core.KindOf(err); got != core.KindInvalidToken {
		t.Errorf("kind = %q, want %q", got, core.KindInvalidToken)
	}
}

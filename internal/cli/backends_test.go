package cli

import (
	"context"
	"testing"

	"github.com/mwittig/packsize/pkg/config"
)

func TestOpenCache(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantNil bool
		wantErr bool
	}{
		{"default is memory", "", false, false},
		{"memory", "memory", false, false},
		{"none", "none", false, false},
		{"unknown", "leveldb", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend

			c, err := openCache(context.Background(), cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (c == nil) != tt.wantNil {
				t.Errorf("openCache() nil = %v, want %v", c == nil, tt.wantNil)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	if st, err := openStore(ctx, cfg); err != nil || st != nil {
		t.Errorf("openStore() with backend none = (%v, %v), want (nil, nil)", st, err)
	}

	cfg.Store.Backend = "memory"
	st, err := openStore(ctx, cfg)
	if err != nil || st == nil {
		t.Fatalf("openStore() with backend memory = (%v, %v)", st, err)
	}
	st.Close(ctx)

	cfg.Store.Backend = "cassandra"
	if _, err := openStore(ctx, cfg); err == nil {
		t.Error("openStore() with unknown backend should fail")
	}
}

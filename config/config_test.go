package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		chk.Panic("default config must validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocean.json")
	body := `{"decomp":{"haloWidth":3,"decompMethod":"parmetisKway"}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Decomp.HaloWidth != 3 {
		t.Fatalf("HaloWidth = %d, want 3", cfg.Decomp.HaloWidth)
	}
	if cfg.Decomp.DecompMethod != ParmetisKway {
		t.Fatalf("DecompMethod = %v, want parmetisKway", cfg.Decomp.DecompMethod)
	}
	if cfg.IO.IORearranger != RearrangerBox {
		t.Fatalf("IORearranger default not preserved: %v", cfg.IO.IORearranger)
	}
}

func TestValidateRejectsBadHaloWidth(t *testing.T) {
	cfg := Default()
	cfg.Decomp.HaloWidth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for HaloWidth=0")
	}
}

func TestValidateRejectsUnknownDecompMethod(t *testing.T) {
	cfg := Default()
	cfg.Decomp.DecompMethod = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown DecompMethod")
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default postgres", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("expected default storage driver postgres, got %q", cfg.StorageDriver)
		}
	})

	t.Run("memory accepted", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("expected storage driver memory, got %q", cfg.StorageDriver)
		}
	})

	t.Run("invalid rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "dynamo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid STORAGE_DRIVER")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "draftroom-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "draftroom-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_DraftConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default total rounds", func(t *testing.T) {
		t.Setenv("DRAFT_DEFAULT_TOTAL_ROUNDS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DraftDefaultTotalRounds != 15 {
			t.Fatalf("unexpected default total rounds: %d", cfg.DraftDefaultTotalRounds)
		}
	})

	t.Run("rejects zero total rounds", func(t *testing.T) {
		t.Setenv("DRAFT_DEFAULT_TOTAL_ROUNDS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DRAFT_DEFAULT_TOTAL_ROUNDS=0")
		}
	})
}

func TestLoad_PlayerDataConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("PLAYERDATA_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PlayerDataEnabled {
			t.Fatalf("expected PlayerDataEnabled=false by default")
		}
	})

	t.Run("enabled requires token", func(t *testing.T) {
		t.Setenv("PLAYERDATA_ENABLED", "true")
		t.Setenv("PLAYERDATA_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when PLAYERDATA_ENABLED=true without PLAYERDATA_TOKEN")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("PLAYERDATA_ENABLED", "true")
		t.Setenv("PLAYERDATA_TOKEN", "token")
		t.Setenv("PLAYERDATA_TIMEOUT", "15s")
		t.Setenv("PLAYERDATA_MAX_RETRIES", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.PlayerDataEnabled {
			t.Fatalf("expected PlayerDataEnabled=true")
		}
		if cfg.PlayerDataTimeout != 15*time.Second {
			t.Fatalf("unexpected playerdata timeout: %s", cfg.PlayerDataTimeout)
		}
		if cfg.PlayerDataMaxRetries != 2 {
			t.Fatalf("unexpected playerdata retries: %d", cfg.PlayerDataMaxRetries)
		}
	})
}

func TestLoad_AutopickConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("AUTOPICK_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AutopickEnabled {
			t.Fatalf("expected AutopickEnabled=false by default")
		}
		if cfg.AutopickIdleAfter != 90*time.Second {
			t.Fatalf("unexpected default idle after: %s", cfg.AutopickIdleAfter)
		}
		if cfg.AutopickInterval != 30*time.Second {
			t.Fatalf("unexpected default interval: %s", cfg.AutopickInterval)
		}
		if cfg.AutopickMaxWorkers != 4 {
			t.Fatalf("unexpected default max workers: %d", cfg.AutopickMaxWorkers)
		}
	})

	t.Run("requires playerdata", func(t *testing.T) {
		t.Setenv("AUTOPICK_ENABLED", "true")
		t.Setenv("PLAYERDATA_ENABLED", "false")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when AUTOPICK_ENABLED=true without PLAYERDATA_ENABLED")
		}
	})

	t.Run("enabled with playerdata", func(t *testing.T) {
		t.Setenv("AUTOPICK_ENABLED", "true")
		t.Setenv("PLAYERDATA_ENABLED", "true")
		t.Setenv("PLAYERDATA_TOKEN", "token")
		t.Setenv("AUTOPICK_IDLE_AFTER", "2m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.AutopickEnabled {
			t.Fatalf("expected AutopickEnabled=true")
		}
		if cfg.AutopickIdleAfter != 2*time.Minute {
			t.Fatalf("unexpected idle after: %s", cfg.AutopickIdleAfter)
		}
	})
}

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORDSPARK_DB", "/tmp/wordspark-test.db")
	t.Setenv("WORDSPARK_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: "9000", Env: "production"}, false},
		{"empty port", Config{Port: "", Env: "development"}, true},
		{"non-numeric port", Config{Port: "http", Env: "development"}, true},
		{"bad env", Config{Port: "8080", Env: "staging"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

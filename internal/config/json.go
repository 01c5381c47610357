package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations so operators can keep a readable config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
		SeedOnStart  bool   `json:"seed_on_start"`
	} `json:"app,omitempty"`

	Security struct {
		AccessTokenTTL     Duration `json:"access_token_ttl"`
		RefreshTokenTTL    Duration `json:"refresh_token_ttl"`
		RememberMeTTL      Duration `json:"remember_me_ttl"`
		RefreshPolicy      string   `json:"refresh_policy"`
		LockoutThreshold   int      `json:"lockout_threshold"`
		LockoutDuration    Duration `json:"lockout_duration"`
		AdminLockDuration  Duration `json:"admin_lock_duration"`
		PermissionCacheTTL Duration `json:"permission_cache_ttl"`
		MinPasswordLength  int      `json:"min_password_length"`
	} `json:"security,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Redis struct {
			Addr     string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
			SeedOnStart:  jsonCfg.App.SeedOnStart,
		},
		Security: Security{
			AccessTokenTTL:     time.Duration(jsonCfg.Security.AccessTokenTTL),
			RefreshTokenTTL:    time.Duration(jsonCfg.Security.RefreshTokenTTL),
			RememberMeTTL:      time.Duration(jsonCfg.Security.RememberMeTTL),
			RefreshPolicy:      jsonCfg.Security.RefreshPolicy,
			LockoutThreshold:   jsonCfg.Security.LockoutThreshold,
			LockoutDuration:    time.Duration(jsonCfg.Security.LockoutDuration),
			AdminLockDuration:  time.Duration(jsonCfg.Security.AdminLockDuration),
			PermissionCacheTTL: time.Duration(jsonCfg.Security.PermissionCacheTTL),
			MinPasswordLength:  jsonCfg.Security.MinPasswordLength,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h" or "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

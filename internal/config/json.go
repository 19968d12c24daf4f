package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing for file-based configuration.
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey          string   `json:"token_sign_key"`
		TokenIssuer           string   `json:"token_issuer"`
		TokenAudience         string   `json:"token_audience"`
		TokenExpiresInMinutes string   `json:"token_expires_in_minutes"`
		RefreshTokenDuration  Duration `json:"refresh_token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Client struct {
		ServerURL      string   `json:"server_url"`
		SessionDBPath  string   `json:"session_db_path"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"client,omitempty"`
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
		Auth: Auth{
			TokenSignKey:          jsonCfg.Auth.TokenSignKey,
			TokenIssuer:           jsonCfg.Auth.TokenIssuer,
			TokenAudience:         jsonCfg.Auth.TokenAudience,
			TokenExpiresInMinutes: jsonCfg.Auth.TokenExpiresInMinutes,
			RefreshTokenDuration:  time.Duration(jsonCfg.Auth.RefreshTokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Client: Client{
			ServerURL:      jsonCfg.Client.ServerURL,
			SessionDBPath:  jsonCfg.Client.SessionDBPath,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
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

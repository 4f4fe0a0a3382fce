package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MINDMAP_"

// EnvVars maps the supported environment overrides to config keys.
var EnvVars = map[string]string{
	"MINDMAP_SOURCE":         "source",
	"MINDMAP_API_URL":        "api_url",
	"MINDMAP_SNAPSHOT":       "snapshot_path",
	"MINDMAP_ROOT_LABEL":     "root_label",
	"MINDMAP_MAX_MODELS":     "max_models_per_section",
	"MINDMAP_MODEL_LIMIT":    "model_limit",
	"MINDMAP_RENDERER":       "renderer",
	"MINDMAP_NO_CACHE":       "cache.disabled",
	"MINDMAP_CACHE_DIR":      "cache.dir",
	"MINDMAP_CACHE_TTL":      "cache.ttl",
	"MINDMAP_REDIS_ADDR":     "cache.redis_addr",
	"MINDMAP_REDIS_PASSWORD": "cache.redis_password",
	"MINDMAP_REDIS_DB":       "cache.redis_db",
	"MINDMAP_MONGO_URI":      "mongo.uri",
	"MINDMAP_MONGO_DATABASE": "mongo.database",
	"MINDMAP_ADDR":           "server.addr",
	"MINDMAP_CORS_ORIGINS":   "server.cors_origins",
	"MINDMAP_NAV_BASE_URL":   "server.nav_base_url",
}

// envProvider reads the MINDMAP_* overrides. Unknown names and empty values
// are skipped; CORS origins are a comma-separated list.
func envProvider() *env.Env {
	return env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, any) {
		key, ok := EnvVars[name]
		if !ok || value == "" {
			return "", nil
		}
		if key == "server.cors_origins" {
			return key, splitList(value)
		}
		return key, value
	})
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

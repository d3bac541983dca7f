// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/muba123321/WATTWISE/internal/app/system/energy"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for WattWise.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, identity_provider, etc.
//   - Environment variables: WATTWISE_MONGO_URI, WATTWISE_IDENTITY_PROVIDER, etc.
//   - Command-line flags: --mongo_uri, --identity_provider, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wattwise", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Identity authority
	{Name: "identity_provider", Default: ProviderFirebase, Desc: "Bearer token verifier: 'firebase' or 'google'"},
	{Name: "firebase_credentials_file", Default: "", Desc: "Path to Firebase service account JSON (blank uses application default credentials)"},

	// Energy estimation
	{Name: "energy_rate_per_kwh", Default: "0.13", Desc: "Electricity rate per kWh used for monthly cost estimates"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, WATTWISE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WATTWISE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	rate, err := strconv.ParseFloat(appValues.String("energy_rate_per_kwh"), 64)
	if err != nil || rate <= 0 {
		rate = energy.DefaultRatePerKWh
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		IdentityProvider:        appValues.String("identity_provider"),
		FirebaseCredentialsFile: appValues.String("firebase_credentials_file"),

		EnergyRatePerKWh: rate,
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// WattWise validates the MongoDB URI format and the identity provider
// selection to catch configuration errors early, before attempting to
// connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.IdentityProvider {
	case ProviderFirebase, ProviderGoogle:
	default:
		return fmt.Errorf("unknown identity provider %q (want %q or %q)",
			appCfg.IdentityProvider, ProviderFirebase, ProviderGoogle)
	}

	return nil
}

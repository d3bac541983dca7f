// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to WattWise lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity authority configuration
	IdentityProvider        string // Token verifier backend: "firebase" or "google"
	FirebaseCredentialsFile string // Path to the Firebase service account JSON (blank uses ADC)

	// Energy estimation
	EnergyRatePerKWh float64 // Electricity tariff used for monthly cost estimates
}

// Identity provider values accepted by IdentityProvider.
const (
	ProviderFirebase = "firebase"
	ProviderGoogle   = "google"
)

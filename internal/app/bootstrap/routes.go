// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	appliancesfeature "github.com/muba123321/WATTWISE/internal/app/features/appliances"
	authfeature "github.com/muba123321/WATTWISE/internal/app/features/auth"
	consumptionfeature "github.com/muba123321/WATTWISE/internal/app/features/consumption"
	goalsfeature "github.com/muba123321/WATTWISE/internal/app/features/goals"
	healthfeature "github.com/muba123321/WATTWISE/internal/app/features/health"
	preferencesfeature "github.com/muba123321/WATTWISE/internal/app/features/preferences"
	readingsfeature "github.com/muba123321/WATTWISE/internal/app/features/readings"
	tipsfeature "github.com/muba123321/WATTWISE/internal/app/features/tips"
	appliancestore "github.com/muba123321/WATTWISE/internal/app/store/appliances"
	goalstore "github.com/muba123321/WATTWISE/internal/app/store/goals"
	readingstore "github.com/muba123321/WATTWISE/internal/app/store/readings"
	userstore "github.com/muba123321/WATTWISE/internal/app/store/users"
	"github.com/muba123321/WATTWISE/internal/app/system/apiauth"
	"github.com/muba123321/WATTWISE/internal/app/system/identity"
	"github.com/muba123321/WATTWISE/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It builds the token verifier
// for the configured identity authority, wires the stores, and mounts
// the JSON API under /api plus the public health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := newVerifier(appCfg)
	if err != nil {
		logger.Error("identity verifier init failed", zap.Error(err))
		return nil, err
	}

	db := deps.WattWiseMongoDatabase
	users := userstore.New(db)
	appliances := appliancestore.New(db)
	readings := readingstore.New(db)
	goals := goalstore.New(db)

	// The Request Gate verifies bearer tokens and resolves the internal
	// user; every protected route group sits behind it.
	gate := apiauth.New(verifier, users, logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.WattWiseMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authfeature.Routes(r, authfeature.NewHandler(users, verifier, logger), gate)
		})
		r.Route("/appliance", func(r chi.Router) {
			appliancesfeature.Routes(r, appliancesfeature.NewHandler(appliances, appCfg.EnergyRatePerKWh, logger), gate)
		})
		r.Route("/goals", func(r chi.Router) {
			goalsfeature.Routes(r, goalsfeature.NewHandler(goals, logger), gate)
		})
		r.Route("/meter-readings", func(r chi.Router) {
			readingsfeature.Routes(r, readingsfeature.NewHandler(readings, logger), gate)
		})
		r.Route("/consumption", func(r chi.Router) {
			consumptionfeature.Routes(r, consumptionfeature.NewHandler(readings, logger), gate)
		})
		r.Route("/user", func(r chi.Router) {
			preferencesfeature.Routes(r, preferencesfeature.NewHandler(users, logger), gate)
		})
		r.Route("/tips", func(r chi.Router) {
			tipsfeature.Routes(r, tipsfeature.NewHandler(logger))
		})
	})

	return r, nil
}

// newVerifier builds the token verifier for the configured identity
// authority.
func newVerifier(appCfg AppConfig) (identity.Verifier, error) {
	switch appCfg.IdentityProvider {
	case ProviderFirebase:
		return identity.NewFirebaseVerifier(context.Background(), appCfg.FirebaseCredentialsFile)
	case ProviderGoogle:
		return identity.NewGoogleVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", appCfg.IdentityProvider)
	}
}

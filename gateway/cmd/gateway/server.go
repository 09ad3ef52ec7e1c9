package main

import (
	"portfolio-gateway/gateway/internal/authn"
	authnREST "portfolio-gateway/gateway/internal/authn/rest"
	"portfolio-gateway/gateway/internal/content"
	contentREST "portfolio-gateway/gateway/internal/content/rest"
	"portfolio-gateway/gateway/internal/lib/restmachinery"
	"portfolio-gateway/internal/redis"
	"portfolio-gateway/sdk"
)

func getServerFromEnvironment() (restmachinery.Server, error) {

	// Server config
	serverConfig, err := restmachinery.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Session relay config
	authnConfig, err := authn.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Content config
	contentConfig, err := content.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Common
	redisClient, err := redis.Client()
	if err != nil {
		return nil, err
	}
	apiClient := sdk.NewClient(
		authnConfig.BackendAPIAddress(),
		authnConfig.SessionCookieName(),
		false,
	)

	// Sessions
	sessionsService := authn.NewSessionsService(authnConfig)
	stateStore := authn.NewStateStore(
		sessionsService,
		apiClient.Auth(),
		authnConfig.SessionCookieName(),
		authn.NewRedisSnapshotStore(redisClient),
	)

	// Content-- protected by the guard
	experiencesService := content.NewExperiencesService(
		apiClient.Experiences(),
		apiClient.Public(),
		content.NewRedisListCache(
			redisClient,
			"portfolio:content:experiences:",
			contentConfig.CacheTTL(),
		),
	)
	projectsService := content.NewProjectsService(
		apiClient.Projects(),
		content.NewRedisListCache(
			redisClient,
			"portfolio:content:projects:",
			contentConfig.CacheTTL(),
		),
	)

	baseEndpoints := &restmachinery.BaseEndpoints{
		AuthFilter: authn.NewGuardFilter(stateStore, authnConfig.LoginPath()),
	}

	return restmachinery.NewServer(
		serverConfig,
		baseEndpoints,
		[]restmachinery.Endpoints{
			authnREST.NewSessionsEndpoints(
				baseEndpoints,
				authnConfig.SessionCookieName(),
				sessionsService,
				stateStore,
			),
			contentREST.NewExperiencesEndpoints(
				baseEndpoints,
				experiencesService,
			),
			contentREST.NewProjectsEndpoints(
				baseEndpoints,
				projectsService,
			),
		},
	), nil
}

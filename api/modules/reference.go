package modules

import (
	"leaguedash/api/handlers"
	referenceservice "leaguedash/api/services/reference"
)

func initializeReferenceHandler(deps *ModuleDependencies) *handlers.ReferenceHandler {
	// Initialize the reference service and handler.
	referenceDeps := &referenceservice.ReferenceServiceDeps{
		DB:       deps.DB,
		MemCache: deps.ReferenceMemCache,
	}

	referenceService := referenceservice.NewReferenceService(referenceDeps)

	referenceHandlerDeps := &handlers.ReferenceHandlerDependencies{
		ReferenceService: referenceService,
		Logger:           deps.Logger,
	}

	return handlers.NewReferenceHandler(referenceHandlerDeps)
}

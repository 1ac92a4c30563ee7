// Package service wires the scenario pipeline to its collaborators: the LLM
// gateway, the admission policy, the schema cross-check and the usage store.
package service

import (
	"scenariod/internal/config"
	store "scenariod/internal/repository"
	"scenariod/internal/scenario"
	"scenariod/internal/schema"
	"scenariod/policy"
)

type Service struct {
	store        store.Store
	generator    *scenario.Generator
	policyEngine *policy.Engine
	schemaLoader *schema.Loader
	config       *config.Config
	queue        *Queue
}

func New(db store.Store, gateway scenario.Gateway, policyEngine *policy.Engine, schemaLoader *schema.Loader, cfg *config.Config) *Service {
	pricing := scenario.Pricing{
		InputPerMTok:  cfg.PriceInPerMTok,
		OutputPerMTok: cfg.PriceOutPerMTok,
	}
	return &Service{
		store:        db,
		generator:    scenario.NewGenerator(gateway, pricing),
		policyEngine: policyEngine,
		schemaLoader: schemaLoader,
		config:       cfg,
		queue:        NewQueue(cfg.QueueDepth),
	}
}

// Close drains the generation queue.
func (s *Service) Close() {
	s.queue.Close()
}

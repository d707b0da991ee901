package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
)

const CharacteristicsCacheKey = "catalog:characteristics"

// CatalogService sirve el catálogo de amenities agrupado por tipo
type CatalogService interface {
	Groups(ctx context.Context) ([]domain.CharacteristicGroup, error)
	Invalidate()
}

type catalogService struct {
	listings  clients.ListingsClient
	cacheRepo repositories.CacheRepository
	ttl       time.Duration
}

func NewCatalogService(listings clients.ListingsClient, cacheRepo repositories.CacheRepository, ttl time.Duration) CatalogService {
	return &catalogService{listings: listings, cacheRepo: cacheRepo, ttl: ttl}
}

// Groups trae amenities y tipos en paralelo; si falla cualquiera de los dos no se cachea nada
func (s *catalogService) Groups(ctx context.Context) ([]domain.CharacteristicGroup, error) {
	var groups []domain.CharacteristicGroup
	if s.cacheRepo.Get(CharacteristicsCacheKey, &groups) {
		return groups, nil
	}

	var (
		chars []domain.Characteristic
		types []domain.CharacteristicType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chars, err = s.listings.ListCharacteristics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.listings.ListCharacteristicTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError(apperrors.OpCatalog, err)
	}

	groups = domain.GroupCharacteristics(chars, types)
	s.cacheRepo.Set(CharacteristicsCacheKey, groups, s.ttl)
	log.Debug().Int("groups", len(groups)).Int("characteristics", len(chars)).Msg("Characteristics catalog refreshed")
	return groups, nil
}

func (s *catalogService) Invalidate() {
	s.cacheRepo.Delete(CharacteristicsCacheKey)
}

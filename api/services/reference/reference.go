package referenceservice

import (
	"context"
	"time"

	"leaguedash/api/cache"
	"leaguedash/api/dto"
	referencerepo "leaguedash/api/repositories/reference"
	"leaguedash/pkg/daterange"

	"gorm.io/gorm"
)

// Reference data barely changes, a long mem cache is enough. No redis here.
const referenceCacheDuration = time.Hour

// ReferenceService serves the league and split reference lists.
type ReferenceService struct {
	db       *gorm.DB
	memCache cache.MemCache

	ReferenceRepository referencerepo.ReferenceRepository
}

// ReferenceServiceDeps is the dependency list for the reference service.
type ReferenceServiceDeps struct {
	DB       *gorm.DB
	MemCache cache.MemCache
}

// NewReferenceService creates a reference service.
func NewReferenceService(deps *ReferenceServiceDeps) *ReferenceService {
	return &ReferenceService{
		db:                  deps.DB,
		memCache:            deps.MemCache,
		ReferenceRepository: referencerepo.NewReferenceRepository(deps.DB),
	}
}

// Leagues returns the active leagues.
func (rs *ReferenceService) Leagues(ctx context.Context) ([]*dto.LeagueEntry, error) {
	if mem := rs.memCache.Get("leagues"); mem != nil {
		if leagues, ok := mem.([]*dto.LeagueEntry); ok {
			return leagues, nil
		}
	}

	leagues, err := rs.ReferenceRepository.ActiveLeagues(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.LeagueEntry, 0, len(leagues))
	for _, l := range leagues {
		entries = append(entries, &dto.LeagueEntry{
			Id:        l.ID,
			Name:      l.Name,
			ShortName: l.ShortName,
			Region:    l.Region,
		})
	}

	rs.memCache.Set("leagues", entries, referenceCacheDuration)

	return entries, nil
}

// Splits returns every recorded split.
func (rs *ReferenceService) Splits(ctx context.Context) ([]*dto.SplitEntry, error) {
	if mem := rs.memCache.Get("splits"); mem != nil {
		if splits, ok := mem.([]*dto.SplitEntry); ok {
			return splits, nil
		}
	}

	splits, err := rs.ReferenceRepository.Splits(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.SplitEntry, 0, len(splits))
	for _, s := range splits {
		entries = append(entries, &dto.SplitEntry{
			Id:        s.ID,
			Season:    s.Season,
			Number:    s.Number,
			StartDate: s.StartDate.Format(daterange.DateFormat),
			EndDate:   s.EndDate.Format(daterange.DateFormat),
		})
	}

	rs.memCache.Set("splits", entries, referenceCacheDuration)

	return entries, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"time"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	specialtiesCacheKey = "catalog:specialties"
	servicesCacheKey    = "catalog:services"
	catalogCacheTTL     = 5 * time.Minute
)

// CatalogUsecase serves the read-only reference data backing specialty
// resolution and the services view. Results are memoized in Redis: the panel
// re-requests the catalog on every screen mount, and the data changes rarely.
type CatalogUsecase interface {
	Specialties(ctx context.Context) ([]entity.Specialty, error)
	Services(ctx context.Context) ([]entity.ClinicService, error)
}

type catalogUsecase struct {
	log         *logrus.Logger
	catalog     gateway.CatalogGateway
	redisClient *redis.Client
}

func NewCatalogUsecase(log *logrus.Logger, catalog gateway.CatalogGateway, redisClient *redis.Client) CatalogUsecase {
	return &catalogUsecase{
		log:         log,
		catalog:     catalog,
		redisClient: redisClient,
	}
}

func (u *catalogUsecase) Specialties(ctx context.Context) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	if u.fromCache(ctx, specialtiesCacheKey, &specialties) {
		return specialties, nil
	}

	specialties, err := u.catalog.Specialties(ctx)
	if err != nil {
		return nil, err
	}
	u.toCache(ctx, specialtiesCacheKey, specialties)
	return specialties, nil
}

func (u *catalogUsecase) Services(ctx context.Context) ([]entity.ClinicService, error) {
	var services []entity.ClinicService
	if u.fromCache(ctx, servicesCacheKey, &services) {
		return services, nil
	}

	services, err := u.catalog.Services(ctx)
	if err != nil {
		return nil, err
	}
	u.toCache(ctx, servicesCacheKey, services)
	return services, nil
}

// fromCache loads a cached catalog page. Cache errors only ever cause a
// fallthrough to the clinic API.
func (u *catalogUsecase) fromCache(ctx context.Context, key string, out interface{}) bool {
	raw, err := u.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			u.log.Warnf("Failed to read catalog cache %s: %+v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		u.log.Warnf("Failed to decode catalog cache %s: %+v", key, err)
		return false
	}
	return true
}

func (u *catalogUsecase) toCache(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		u.log.Warnf("Failed to encode catalog cache %s: %+v", key, err)
		return
	}
	if err := u.redisClient.Set(ctx, key, raw, catalogCacheTTL).Err(); err != nil {
		u.log.Warnf("Failed to write catalog cache %s: %+v", key, err)
	}
}

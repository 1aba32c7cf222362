package service

import (
	redisx "github.com/ostapkoval/cinechain/internal/redis"
	postgres "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redis "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/service/catalog"
	"github.com/ostapkoval/cinechain/internal/service/query"
	"github.com/ostapkoval/cinechain/internal/service/sales"
	"github.com/ostapkoval/cinechain/internal/service/schedule"
)

type Services struct {
	Catalog  *catalog.Service
	Schedule *schedule.Service
	Sales    *sales.Service
	Query    *query.Service
}

type Config struct {
	Schedule schedule.Config
	Query    query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.SchedulePubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Catalog:  catalog.New(store, cache),
		Schedule: schedule.New(store, cache, pubsub, cfg.Schedule),
		Sales:    sales.New(store, cache, pubsub, limiter),
		Query:    query.New(store, cache, cfg.Query),
	}
}

package http

import (
	"github.com/nats-io/nats.go"

	"github.com/aliaga/companymap/internal/adapters/postgres"
	"github.com/aliaga/companymap/internal/adapters/valkey"
	"github.com/aliaga/companymap/internal/core/usecases"
)

// Dependencies holds everything the HTTP handlers need. DB, Cache and NATS
// may be nil; readiness reporting degrades accordingly.
type Dependencies struct {
	Companies *usecases.CompanyService
	DB        *postgres.DB
	Cache     *valkey.Cache
	NATS      *nats.Conn
}

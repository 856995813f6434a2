package pgsql

import (
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one pool.
func NewRepositoryProvider(pool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CategoryRepo: newPgxCategoryRepository(pool),
		PricingRepo:  newPgxPricingRepository(pool),
		UserRepo:     newPgxUserRepository(pool),
	}
}

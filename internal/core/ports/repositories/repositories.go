package repositories

// RepositoryProvider holds instances of all repositories so they can be
// injected into the service container in one place.
type RepositoryProvider struct {
	CategoryRepo CategoryRepositoryWithTx
	PricingRepo  PricingRepositoryWithTx
	UserRepo     UserRepositoryFacade
}

package services

import (
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/platform/config"
)

// NewServiceContainer wires the application services over the repository
// provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Category: NewCategoryService(repos.CategoryRepo, repos.UserRepo),
		Pricing:  NewPricingService(repos.PricingRepo, repos.UserRepo),
		User:     NewUserService(repos.UserRepo),
		Auth:     NewAuthService(repos.UserRepo, cfg),
	}
}

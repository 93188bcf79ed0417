package components

import (
	"storefront/internal/infra/readstore"
	repo_impl "storefront/internal/infra/repository"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewCartRepository,
			fx.As(new(commands.CartRepository)),
			fx.As(new(queries.CartReadStore)),
		),
		fx.Annotate(
			repo_impl.NewCouponRepository,
			fx.As(new(commands.CouponRepository)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		// Read-side store serving both the catalog queries and the add-time
		// stock checks
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(commands.CatalogRepository)),
			fx.As(new(queries.CatalogReadStore)),
		),
	),
)

func NewCartRepository(client *goredis.Client, cfg config.Config) *repo_impl.CartRepository {
	return repo_impl.NewCartRepository(client, cfg.Redis.CartTTL, cfg.Redis.LeaseTTL, cfg.Redis.LeaseWait)
}

package router

import (
	"github.com/revuehub/api/internal/application"
	"github.com/revuehub/api/internal/container"
	pginfra "github.com/revuehub/api/internal/infrastructure/postgres"
	"github.com/revuehub/api/internal/infrastructure/search"
	handlers "github.com/revuehub/api/internal/interface/http"
	"github.com/revuehub/api/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module. Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	genres := pginfra.NewGenreRepository(pool)
	titles := pginfra.NewTitleRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	comments := pginfra.NewCommentRepository(pool)

	titleIndex := search.NewTitleIndex(container.GetES(), cfg.ESTitlesIndex, logger)

	var enqueuer application.EmailEnqueuer
	if pub := container.GetRabbitPub(); pub != nil {
		enqueuer = pub
	}
	authSvc := application.NewAuthService(users, container.GetJWT(), enqueuer, cfg.MailSendEnabled, logger)
	catalogSvc := application.NewCatalogService(categories, genres, titles, titleIndex, logger)
	reviewSvc := application.NewReviewService(titles, reviews, comments)
	userSvc := application.NewUserService(users)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc, logger), users, container.GetJWT()))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc, logger), users, container.GetJWT()))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), users, container.GetJWT()))
}

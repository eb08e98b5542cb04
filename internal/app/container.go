package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"talent-admin/internal/config"
	"talent-admin/internal/database"
	dbpostgres "talent-admin/internal/database/postgres"
	"talent-admin/internal/infrastructure/cache"
	"talent-admin/internal/infrastructure/persistence/supabase"
	"talent-admin/internal/pkg/jwt"
	"talent-admin/internal/repository"
	"talent-admin/internal/usecase"
	"talent-admin/internal/usecase/auth"
	"talent-admin/internal/ws"
)

// Container owns every long-lived dependency of the admin service. Exactly
// one of DB and Supabase backs the repositories, chosen by DATA_BACKEND.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Supabase *supabase.Client
	Cache    *cache.Redis
	Hub      *ws.Hub
	Notifier *ws.Notifier

	Companies    repository.CompanyRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Freelancers  repository.FreelancerRepository
	Stats        repository.StatsRepository

	Dashboard     *usecase.DashboardUsecase
	HiringRate    *usecase.HiringRateRecalculator
	CompanyUC     *usecase.CompanyUsecase
	JobUC         *usecase.JobUsecase
	ApplicationUC *usecase.ApplicationUsecase
	FreelancerUC  *usecase.FreelancerUsecase
	Auth          *auth.Service
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStore(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	c.Notifier = ws.NewNotifier(c.Hub, logger)

	c.Dashboard = usecase.NewDashboardUsecase(c.Stats, c.Cache, cfg.Redis.DashboardTTL, logger)
	c.HiringRate = usecase.NewHiringRateRecalculator(
		c.Jobs,
		c.Applications,
		c.Companies,
		usecase.HiringRateOptions{Async: cfg.HiringRate.Async, Timeout: cfg.HiringRate.Timeout},
		c.Notifier,
		c.Dashboard,
		logger,
	)
	c.CompanyUC = usecase.NewCompanyUsecase(c.Companies, c.Notifier, c.Dashboard, logger)
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Applications, c.Notifier, c.Dashboard, logger)
	c.ApplicationUC = usecase.NewApplicationUsecase(c.Applications, c.HiringRate, c.Notifier, c.Dashboard, logger)
	c.FreelancerUC = usecase.NewFreelancerUsecase(c.Freelancers, logger)

	provider, err := c.authProvider()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Auth = auth.NewService(provider, cfg.Auth.AllowedEmails, c.Notifier, logger)

	logger.Printf("[App] container ready backend=%s auth=%s", cfg.Backend, cfg.Auth.Provider)
	return c, nil
}

func (c *Container) initStore() error {
	switch c.Config.Backend {
	case config.BackendSupabase:
		client, err := c.supabaseClient()
		if err != nil {
			return err
		}
		c.Companies = supabase.NewCompanyRepository(client)
		c.Jobs = supabase.NewJobRepository(client)
		c.Applications = supabase.NewApplicationRepository(client)
		c.Freelancers = supabase.NewFreelancerRepository(client)
		c.Stats = supabase.NewStatsRepository(client)
		return nil

	case config.BackendPostgres, "":
		timeout := c.Config.Database.ConnectTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, c.Config.Database)
		if err != nil {
			return err
		}
		c.DB = db
		c.Companies = repository.NewPostgresCompanyRepository(db)
		c.Jobs = repository.NewPostgresJobRepository(db)
		c.Applications = repository.NewPostgresApplicationRepository(db)
		c.Freelancers = repository.NewPostgresFreelancerRepository(db)
		c.Stats = repository.NewPostgresStatsRepository(db)
		return nil

	default:
		return fmt.Errorf("unknown data backend %q", c.Config.Backend)
	}
}

func (c *Container) supabaseClient() (*supabase.Client, error) {
	if c.Supabase != nil {
		return c.Supabase, nil
	}
	client, err := supabase.NewClient(c.Config.Supabase)
	if err != nil {
		return nil, err
	}
	c.Supabase = client
	return client, nil
}

func (c *Container) authProvider() (auth.Provider, error) {
	switch c.Config.Auth.Provider {
	case config.AuthProviderSupabase:
		client, err := c.supabaseClient()
		if err != nil {
			return nil, err
		}
		return supabase.NewAuthenticator(client, c.Config.Supabase.JWTSecret), nil

	case config.AuthProviderLocal:
		tokens := jwt.NewHMACService(
			c.Config.JWT.AccessSecret,
			c.Config.JWT.RefreshSecret,
			c.Config.JWT.AccessExpiresIn,
			c.Config.JWT.RefreshExpiresIn,
		)
		return auth.NewLocalProvider(c.Config.Auth.AdminEmail, c.Config.Auth.AdminPasswordHash, tokens), nil

	default:
		return nil, fmt.Errorf("unknown auth provider %q", c.Config.Auth.Provider)
	}
}

// StorePing reports whether the configured backend answers.
func (c *Container) StorePing(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Ping(ctx)
	}
	_, err := c.Stats.Count(ctx, repository.CountQuery{Table: repository.TableEmployers})
	return err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.HiringRate != nil {
		c.HiringRate.Wait()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

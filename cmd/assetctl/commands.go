package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/observability"
	"github.com/spec-kit/asset-service/internal/persistence"
	"github.com/spec-kit/asset-service/internal/repository"
	"github.com/spec-kit/asset-service/internal/service"
	"github.com/spec-kit/asset-service/internal/worker"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "assetctl",
		Usage: "Administer the asset service database and accounts",
		Commands: []*cli.Command{
			migrateCmd(),
			seedCmd(),
			createUserCmd(),
			deleteUserCmd(),
			hashPasswordCmd(),
		},
	}
}

// env holds the connections opened for a database-backed command.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
	redis  *persistence.Redis
}

func openEnv(ctx *cli.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}
	pg, err := persistence.NewPostgres(ctx.Context, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		pg:     pg,
		redis:  persistence.NewRedis(ctx.Context, cfg.Redis, logger),
	}, nil
}

func (e *env) close() {
	e.redis.Close()
	e.pg.Close()
	_ = e.logger.Sync()
}

func (e *env) users() *service.UserService {
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, e.logger)
	return service.NewUserService(
		repository.NewUserRepository(e.pg.PoolHandle()),
		auth.NewPasswordHasher(e.cfg.Auth.BcryptCost),
		repository.NewLoginActivityRepository(e.redis.Client),
		e.logger,
	).WithEvents(dispatcher)
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Action: func(ctx *cli.Context) error {
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			return persistence.RunMigrations(ctx.Context, e.pg.PoolHandle(), e.logger)
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the default admin account when no users exist",
		Action: func(ctx *cli.Context) error {
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			created, err := e.users().SeedDefaultAdmin(ctx.Context, e.cfg.Auth.SeedAdminUsername, e.cfg.Auth.SeedAdminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(ctx.App.Writer, "seeded user %q\n", e.cfg.Auth.SeedAdminUsername)
			} else {
				fmt.Fprintln(ctx.App.Writer, "users already present, nothing to do")
			}
			return nil
		},
	}
}

func createUserCmd() *cli.Command {
	var username string
	return &cli.Command{
		Name:  "create-user",
		Usage: "Create an account (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "Name of the user to create",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			password, err := readPassword(ctx.App.Reader)
			if err != nil {
				return err
			}
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			user, err := e.users().CreateUser(ctx.Context, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(ctx.App.Writer, "created user %q with id %d\n", user.Username, user.ID)
			return nil
		},
	}
}

func deleteUserCmd() *cli.Command {
	var id int64
	return &cli.Command{
		Name:  "delete-user",
		Usage: "Delete an account; its outstanding tokens stop working",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "id",
				Usage:       "Id of the user to delete",
				Destination: &id,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.users().DeleteUser(ctx.Context, id); err != nil {
				return err
			}
			fmt.Fprintf(ctx.App.Writer, "deleted user %d\n", id)
			return nil
		},
	}
}

func hashPasswordCmd() *cli.Command {
	var cost int
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print the bcrypt hash of a password read from stdin",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "cost",
				Usage:       "bcrypt work factor",
				EnvVars:     []string{"AUTH_BCRYPT_COST"},
				Value:       bcrypt.DefaultCost,
				Destination: &cost,
			},
		},
		Action: func(ctx *cli.Context) error {
			password, err := readPassword(ctx.App.Reader)
			if err != nil {
				return err
			}
			hash, err := auth.NewPasswordHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, hash)
			return nil
		},
	}
}

func readPassword(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}
	password := strings.TrimRight(sc.Text(), "\r")
	if password == "" {
		return "", errors.New("missing password from stdin")
	}
	return password, nil
}

package infra

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tnqbao/gau-ticketing-service/config"
	"github.com/tnqbao/gau-ticketing-service/infra/produce"
	"github.com/tnqbao/gau-ticketing-service/service"
)

type Infra struct {
	Logger      *LoggerClient
	Telemetry   *Telemetry
	Database    *DatabaseClient
	ObjectStore service.ObjectStore

	// Optional, nil when not configured or unreachable
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce
}

// InitInfra connects every backing service. The database is required; the
// object store, Redis and RabbitMQ degrade to warnings.
func InitInfra(ctx context.Context, cfg *config.Config) (*Infra, error) {
	env := cfg.EnvConfig

	logger, err := InitLoggerClient(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Logger service: %w", err)
	}

	telemetry, err := InitTelemetry(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telemetry: %w", err)
	}

	database, err := InitDatabaseClient(env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Database service: %w", err)
	}

	objectStore, err := InitObjectStore(ctx, env)
	if err != nil {
		log.Printf("Warning: Failed to initialize object store: %v (ticket mirroring disabled)", err)
		objectStore = DisabledObjectStore{}
	}

	infra := &Infra{
		Logger:      logger,
		Telemetry:   telemetry,
		Database:    database,
		ObjectStore: objectStore,
	}

	if env.Redis.RedisHost != "" {
		redis, err := InitRedisClient(ctx, env)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v (event cache disabled)", err)
		} else {
			infra.Redis = redis
		}
	}

	rabbitMQ, err := InitRabbitMQClient(env)
	if err != nil {
		log.Printf("Warning: Failed to initialize RabbitMQ: %v (booking events and mirror resync disabled)", err)
		return infra, nil
	}

	produceService, err := produce.InitProduce(rabbitMQ.Channel)
	if err != nil {
		_ = rabbitMQ.Close()
		log.Printf("Warning: Failed to initialize Produce service: %v", err)
		return infra, nil
	}
	infra.RabbitMQ = rabbitMQ
	infra.Produce = produceService

	return infra, nil
}

// InitObjectStore builds the ticket mirror store selected by OBJECT_STORE_DRIVER.
func InitObjectStore(ctx context.Context, cfg *config.EnvConfig) (service.ObjectStore, error) {
	switch cfg.ObjectStore.Driver {
	case "minio":
		store, err := InitMinioObjectStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Printf("Warning: MinIO bucket %s is not ready: %v", store.Bucket, err)
		}
		return store, nil
	case "s3":
		store, err := InitS3ObjectStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Printf("Warning: S3 bucket %s is not ready: %v", store.Bucket, err)
		}
		return store, nil
	case "memory":
		return NewMemoryObjectStore(), nil
	case "none":
		return DisabledObjectStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported object store driver %q", cfg.ObjectStore.Driver)
	}
}

func (i *Infra) Close(ctx context.Context) error {
	var errs []error
	if i.RabbitMQ != nil {
		errs = append(errs, i.RabbitMQ.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	errs = append(errs,
		i.Database.Close(),
		i.Telemetry.Shutdown(ctx),
		i.Logger.Shutdown(ctx),
	)
	return errors.Join(errs...)
}

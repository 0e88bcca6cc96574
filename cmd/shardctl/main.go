// shardctl manages the gateway instance registry: register a durable backend
// instance, send a heartbeat, deregister it, or list what is registered.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/config"
	"github.com/Beabadoobee-Fanclub/backend-api/internal/infra/logger"
	redrepo "github.com/Beabadoobee-Fanclub/backend-api/internal/repo/redis"
)

func main() {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	var (
		instanceID   string
		instanceAddr string
	)
	flag.StringVar(&instanceID, "id", "", "instance identifier (generated when empty)")
	flag.StringVar(&instanceAddr, "addr", "", "instance host:port (register only)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: shardctl [-id ID] [-addr HOST:PORT] register|heartbeat|deregister|list")
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	client := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		_ = client.Close()
	}()
	repo := redrepo.NewInstanceRepo(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch command {
	case "register":
		if instanceAddr == "" {
			log.Fatal("register requires -addr")
		}
		if instanceID == "" {
			instanceID = uuid.NewString()
		}
		if err := repo.Register(ctx, instanceID, instanceAddr); err != nil {
			log.Fatal("register instance", zap.Error(err))
		}
		fmt.Println(instanceID)
	case "heartbeat":
		if instanceID == "" {
			log.Fatal("heartbeat requires -id")
		}
		if err := repo.Heartbeat(ctx, instanceID); err != nil {
			log.Fatal("heartbeat instance", zap.Error(err))
		}
	case "deregister":
		if instanceID == "" {
			log.Fatal("deregister requires -id")
		}
		if err := repo.Deregister(ctx, instanceID); err != nil {
			log.Fatal("deregister instance", zap.Error(err))
		}
	case "list":
		records, err := repo.List(ctx)
		if err != nil {
			log.Fatal("list instances", zap.Error(err))
		}
		for _, record := range records {
			fmt.Printf("%s\t%s\t%s\n", record.ID, record.Addr, record.LastSeen.Format(time.RFC3339))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
}

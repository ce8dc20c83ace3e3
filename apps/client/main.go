package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tenhou-lite/apps/client/internal/ledger"
	"tenhou-lite/apps/client/internal/profile"
	"tenhou-lite/apps/client/internal/session"
	"tenhou-lite/apps/client/internal/strategy"
	"tenhou-lite/apps/client/internal/transport"
)

const defaultGatewayURL = "wss://b-ww.mjv.jp/"

func main() {
	userID := resolveUserID()

	decider, err := strategy.New(os.Getenv("STRATEGY"), strategySeedFromEnv())
	if err != nil {
		log.Fatalf("[Client] Failed to init strategy: %v", err)
	}
	ledgerService, ledgerMode, err := ledger.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Client] Failed to init ledger service: %v", err)
	}
	defer ledgerService.Close()

	gatewayURL := strings.TrimSpace(os.Getenv("TENHOU_GATEWAY_URL"))
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}
	conn, err := transport.Dial(gatewayURL)
	if err != nil {
		log.Fatalf("[Client] Failed to connect to %s: %v", gatewayURL, err)
	}
	defer conn.Close()

	cfg := session.Config{
		UserID:   userID,
		Lobby:    envIntOrDefault("TENHOU_LOBBY", 0),
		GameType: envIntOrDefault("TENHOU_GAME_TYPE", 9),
	}
	sess, err := session.New(cfg, conn, decider, ledgerService)
	if err != nil {
		log.Fatalf("[Client] Failed to init session: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("[Client] Ledger mode: %s", ledgerMode)
	log.Printf("[Client] Strategy: %s", decider.Name())
	log.Printf("[Client] Connecting as %s to %s", userID, gatewayURL)
	if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("[Client] Session ended with error: %v", err)
	}
	log.Printf("[Client] Session finished")
}

// resolveUserID 先看保存的资料，再看环境变量，都没有就匿名。
func resolveUserID() string {
	name := strings.TrimSpace(os.Getenv("TENHOU_PROFILE"))
	if name != "" {
		store, err := profile.OpenFromEnv()
		if err != nil {
			log.Fatalf("[Client] Failed to open profile store: %v", err)
		}
		defer store.Close()
		id, err := store.Unlock(name, os.Getenv("TENHOU_PROFILE_PASSPHRASE"))
		if err != nil {
			log.Fatalf("[Client] Failed to unlock profile %q: %v", name, err)
		}
		return id
	}
	if v := strings.TrimSpace(os.Getenv("TENHOU_USER_ID")); v != "" {
		return v
	}
	return "NoName"
}

func strategySeedFromEnv() int64 {
	if v := strings.TrimSpace(os.Getenv("STRATEGY_SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return time.Now().UnixNano()
}

func envIntOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"badminton-bot/checker"
	"badminton-bot/config"
	"badminton-bot/notify"
	"badminton-bot/scraper"
	"badminton-bot/state"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func initStore(cfg *config.Config) state.Store {
	if cfg.StateBackend == "redis" {
		store := state.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err := store.Ping(); err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		log.Println("🗄 Using redis state store")
		return store
	}
	log.Printf("🗄 Using state file: %s", cfg.StateFile)
	return state.NewFileStore(cfg.StateFile)
}

func initNotifiers(cfg *config.Config) []notify.Notifier {
	notifiers := []notify.Notifier{notify.NewEmailNotifier(cfg)}

	if cfg.TelegramToken != "" && len(cfg.TelegramChatIDs) > 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatIDs)
		if err != nil {
			log.Printf("⚠️ Telegram notifier disabled: %v", err)
		} else {
			notifiers = append(notifiers, tg)
		}
	}
	return notifiers
}

func main() {
	// Date labels on the booking site are in Finnish local time.
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		log.Printf("⚠️ Failed to load Helsinki timezone: %v (using UTC)", err)
	} else {
		time.Local = loc
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("⚙️ Loaded config: %d URLs, %d search texts", len(cfg.URLs), len(cfg.SearchTexts))

	svc := checker.New(scraper.New(cfg), initStore(cfg), initNotifiers(cfg), cfg.CheckInterval)
	go svc.Start()
	log.Println("✅ Watcher is running...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("👋 Shutting down...")
	svc.Stop()
}

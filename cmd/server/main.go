package main

import (
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/agent"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/server"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/version"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/arena"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var skirmish bool
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.BoolVar(&skirmish, "skirmish", true, "Spawn a demo skirmish on start")
	flag.Parse()

	logger.Log.Info("Starting Sands of Duat...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error:", err)
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("DUAT_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	service := engine.NewCombatService(cfg)

	if skirmish {
		if err := spawnSkirmish(service, cfg.Seed); err != nil {
			logger.Log.Fatal("Skirmish setup error:", err)
		}
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(service, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	for _, c := range service.Combats() {
		c.RequestAbort()
	}

	logger.Log.Info("Done.")
}

// spawnSkirmish поднимает демонстрационный бой: двое служителей порядка
// против двоих порождений хаоса. Жрецом Сета управляет headless-агент,
// остальными - встроенный AI движка.
func spawnSkirmish(service *engine.CombatService, seed int64) error {
	board := arena.Generate(12, 10, rand.New(rand.NewSource(seed)))
	c := service.CreateCombatOn(board)

	fighters := []struct {
		desc *domain.EntityDescriptor
		pos  domain.Position
	}{
		{
			desc: &domain.EntityDescriptor{
				Name: "Неферкар, клинок Ра", Side: 0, God: "RA", Alignment: "LIFE",
				Attack: 8, Defense: 4, MaxHP: 30, SpiritPow: 6, LifeForce: 8,
				Favor: 40, Initiative: 12, Resistance: 1,
				SeparableSpirit: true, ManifestableKa: true, Resurrectable: true,
			},
			pos: domain.Position{X: 2, Y: 4},
		},
		{
			desc: &domain.EntityDescriptor{
				Name: "Мерит, целительница Исиды", Side: 0, God: "ISIS", Alignment: "LIFE",
				Attack: 4, Defense: 3, MaxHP: 24, SpiritPow: 10, LifeForce: 6,
				Favor: 55, Initiative: 9, Resistance: 2,
				SeparableSpirit: true, Resurrectable: true,
			},
			pos: domain.Position{X: 2, Y: 6},
		},
		{
			desc: &domain.EntityDescriptor{
				Name: "Сехемиб, жрец Сета", Side: 1, God: "SET", Alignment: "CHAOS",
				Attack: 9, Defense: 3, MaxHP: 28, SpiritPow: 7, LifeForce: 7,
				Favor: -30, Initiative: 11, Resistance: 1,
				SeparableSpirit: true, ManifestableKa: true,
			},
			pos: domain.Position{X: 9, Y: 4},
		},
		{
			desc: &domain.EntityDescriptor{
				Name: "Пожиратель из песков", Side: 1, God: "ANUBIS", Alignment: "DEATH",
				Attack: 7, Defense: 5, MaxHP: 34, LifeForce: 10,
				Favor: 10, Initiative: 6, Resistance: 3,
				ManifestableKa: true, Resurrectable: true,
			},
			pos: domain.Position{X: 9, Y: 6},
		},
	}

	var botTarget domain.EntityID = domain.NoEntity
	for _, f := range fighters {
		id, err := c.AddEntity(f.desc, f.pos)
		if err != nil {
			return err
		}
		if f.desc.Name == "Сехемиб, жрец Сета" {
			botTarget = id
		}
	}

	// Агент подписывается до старта, чтобы движок ждал его команд
	if botTarget != domain.NoEntity {
		bot := agent.NewBot(botTarget, c.ID, service)
		go bot.Run()
	}

	return service.StartCombat(c.ID)
}

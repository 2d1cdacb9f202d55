package engine

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// Config хранит параметры запуска движка.
// Все ручки читаются из окружения с префиксом DUAT_.
type Config struct {
	// Seed - мастер-зерно. Каждый бой получает Seed + порядковый номер.
	Seed int64 `env:"SEED"`

	RoundCap     int `env:"ROUND_CAP" envDefault:"50"`
	ActionBudget int `env:"ACTION_BUDGET" envDefault:"1"`

	// Божественные вмешательства: P = min(cap, |favor|/scale)
	DivineScale          float64 `env:"DIVINE_SCALE" envDefault:"100"`
	DivineCap            float64 `env:"DIVINE_CAP" envDefault:"0.75"`
	CurseThreshold       int     `env:"CURSE_THRESHOLD" envDefault:"-20"`
	InterventionDuration int     `env:"INTERVENTION_DURATION" envDefault:"3"`

	// Воскрешение
	ResurrectBaseChance float64 `env:"RESURRECT_BASE_CHANCE" envDefault:"0.2"`
	ResurrectFraction   float64 `env:"RESURRECT_FRACTION" envDefault:"0.334"`

	// Суд Маат
	BlessThreshold int `env:"BLESS_THRESHOLD" envDefault:"3"`
	CurseBalance   int `env:"CURSE_BALANCE" envDefault:"-3"`
	NudgeThreshold int `env:"NUDGE_THRESHOLD" envDefault:"5"`

	// Опасности перехода
	PassageBase int `env:"PASSAGE_BASE" envDefault:"1"`

	// Таймаут хода живого игрока
	TurnTimeout time.Duration `env:"TURN_TIMEOUT" envDefault:"60s"`

	// Каталог архивных записей боев. Пусто - архивирование выключено.
	RecordDir string `env:"RECORD_DIR"`
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:                 time.Now().UnixNano(),
		RoundCap:             50,
		ActionBudget:         1,
		DivineScale:          100,
		DivineCap:            0.75,
		CurseThreshold:       -20,
		InterventionDuration: 3,
		ResurrectBaseChance:  0.2,
		ResurrectFraction:    0.334,
		BlessThreshold:       3,
		CurseBalance:         -3,
		NudgeThreshold:       5,
		PassageBase:          1,
		TurnTimeout:          60 * time.Second,
	}
}

// LoadConfig читает конфиг из окружения поверх значений по умолчанию.
func LoadConfig() (Config, error) {
	cfg := NewConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "DUAT_"}); err != nil {
		return cfg, eris.Wrap(err, "parse engine config")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

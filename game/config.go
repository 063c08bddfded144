package game

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all tunables. Defaults live in DefaultConfig; a TOML file can
// overlay any subset of them.
type Config struct {
	World        WorldConfig       `toml:"world"`
	Asteroids    AsteroidConfig    `toml:"asteroids"`
	Projectiles  ProjectileConfig  `toml:"projectiles"`
	Particles    ParticleConfig    `toml:"particles"`
	Enemies      EnemyConfig       `toml:"enemies"`
	Collectibles CollectibleConfig `toml:"collectibles"`
	Ship         ShipConfig        `toml:"ship"`
	Logging      LoggingConfig     `toml:"logging"`
}

type WorldConfig struct {
	Radius       float32 `toml:"radius"` // world bound, entities live inside this sphere
	ScreenWidth  int     `toml:"screen_width"`
	ScreenHeight int     `toml:"screen_height"`
}

type AsteroidConfig struct {
	Capacity        int     `toml:"capacity"`
	Population      int     `toml:"population"`        // active-hazard budget kept topped up
	SpawnRadiusFrac float32 `toml:"spawn_radius_frac"` // fraction of world radius where asteroids appear
	MinSize         float32 `toml:"min_size"`
	MaxSize         float32 `toml:"max_size"`
	MinSpeed        float32 `toml:"min_speed"`
	MaxSpeed        float32 `toml:"max_speed"`
	MinFragments    int     `toml:"min_fragments"`
	MaxFragments    int     `toml:"max_fragments"`
	FragmentMinSize float32 `toml:"fragment_min_size"` // below this, a fragment is not spawned at all
	DropChance      float64 `toml:"drop_chance"`       // chance a destroyed asteroid drops booty
	PowerUpChance   float64 `toml:"power_up_chance"`   // chance the drop is a power-up instead
}

type ProjectileConfig struct {
	Capacity     int     `toml:"capacity"`
	Speed        float32 `toml:"speed"`
	Radius       float32 `toml:"radius"`
	Lifetime     float32 `toml:"lifetime"`      // seconds
	MuzzleOffset float32 `toml:"muzzle_offset"` // spawn distance in front of the firer
}

type ParticleConfig struct {
	Capacity  int     `toml:"capacity"`
	BurstMin  int     `toml:"burst_min"`
	BurstMax  int     `toml:"burst_max"`
	MinSpeed  float32 `toml:"min_speed"`
	MaxSpeed  float32 `toml:"max_speed"`
	MinLife   float32 `toml:"min_life"`
	MaxLife   float32 `toml:"max_life"`
}

type EnemyConfig struct {
	Capacity      int     `toml:"capacity"`
	ChaserSpeed   float32 `toml:"chaser_speed"`
	ShooterSpeed  float32 `toml:"shooter_speed"`
	ShooterRange  float32 `toml:"shooter_range"`
	ShootCooldown float32 `toml:"shoot_cooldown"`
	Radius        float32 `toml:"radius"`
	WaveInterval  float32 `toml:"wave_interval"` // seconds between waves
	WaveSize      int     `toml:"wave_size"`
}

type CollectibleConfig struct {
	Capacity      int     `toml:"capacity"`
	Radius        float32 `toml:"radius"`
	Lifetime      float32 `toml:"lifetime"` // seconds before an unclaimed drop despawns
	DriftSpeed    float32 `toml:"drift_speed"`
	ShieldSeconds float32 `toml:"shield_seconds"`
	RapidSeconds  float32 `toml:"rapid_seconds"`
}

type ShipConfig struct {
	Radius       float32 `toml:"radius"`
	ThrustAccel  float32 `toml:"thrust_accel"`
	MaxSpeed     float32 `toml:"max_speed"`
	TurnRate     float32 `toml:"turn_rate"` // radians per second
	FireCooldown float32 `toml:"fire_cooldown"`
	RapidFactor  float32 `toml:"rapid_factor"` // cooldown divisor while rapid fire is active
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// DefaultConfig returns the tuning the game ships with. Pool capacities are
// deliberate soft caps: exceeding one silently skips the spawn.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Radius:       1000.0,
			ScreenWidth:  1024,
			ScreenHeight: 768,
		},
		Asteroids: AsteroidConfig{
			Capacity:        500,
			Population:      40,
			SpawnRadiusFrac: 0.95,
			MinSize:         4.0,
			MaxSize:         22.0,
			MinSpeed:        12.0,
			MaxSpeed:        45.0,
			MinFragments:    2,
			MaxFragments:    5,
			FragmentMinSize: 2.0,
			DropChance:      0.25,
			PowerUpChance:   0.2,
		},
		Projectiles: ProjectileConfig{
			Capacity:     50,
			Speed:        420.0,
			Radius:       1.5,
			Lifetime:     2.5,
			MuzzleOffset: 8.0,
		},
		Particles: ParticleConfig{
			Capacity: 3000,
			BurstMin: 12,
			BurstMax: 28,
			MinSpeed: 20.0,
			MaxSpeed: 90.0,
			MinLife:  0.3,
			MaxLife:  1.1,
		},
		Enemies: EnemyConfig{
			Capacity:      32,
			ChaserSpeed:   70.0,
			ShooterSpeed:  40.0,
			ShooterRange:  320.0,
			ShootCooldown: 1.8,
			Radius:        7.0,
			WaveInterval:  20.0,
			WaveSize:      4,
		},
		Collectibles: CollectibleConfig{
			Capacity:      64,
			Radius:        5.0,
			Lifetime:      18.0,
			DriftSpeed:    6.0,
			ShieldSeconds: 8.0,
			RapidSeconds:  6.0,
		},
		Ship: ShipConfig{
			Radius:       6.0,
			ThrustAccel:  120.0,
			MaxSpeed:     180.0,
			TurnRate:     2.4,
			FireCooldown: 0.22,
			RapidFactor:  3.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig overlays the TOML file at path onto the defaults. A missing or
// unreadable file is an error; callers that want pure defaults skip the call.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

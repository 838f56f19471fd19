package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Configs struct {
	Env         string `env:"ENV" envDefault:"local"`
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:8080"`

	Database  DatabaseConfigs `envPrefix:"DATABASE_"`
	ApiServer ServerConfigs   `envPrefix:"API_"`
	Auth      AuthConfigs     `envPrefix:"AUTH_"`
	Discord   DiscordConfigs  `envPrefix:"DISCORD_"`
	Trophy    TrophyConfigs   `envPrefix:"TROPHY_"`
	Redis     RedisConfigs    `envPrefix:"REDIS_"`
	LogLevel  int             `env:"LOG_LEVEL" envDefault:"1"`
}

// Load reads the configurations from environment variables.
func Load() (Configs, error) {
	var cfg Configs
	if err := env.Parse(&cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

type DatabaseConfigs struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"3306"`
	Database string `env:"NAME" envDefault:"questmaster"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

func (s ServerConfigs) Address() string {
	return s.Host + ":" + s.Port
}

type AuthConfigs struct {
	TokenSecret     string        `env:"TOKEN_SECRET" envDefault:"token-secret"`
	AccessTokenName string        `env:"ACCESS_TOKEN_NAME" envDefault:"access_token"`
	Expiration      time.Duration `env:"EXPIRATION" envDefault:"24h"`
}

type DiscordConfigs struct {
	BotToken       string `env:"BOT_TOKEN"`
	GuildID        string `env:"GUILD_ID"`
	PostsChannelID string `env:"POSTS_CHANNEL_ID"`
	LogsChannelID  string `env:"LOGS_CHANNEL_ID"`
	GMRoleID       string `env:"GM_ROLE_ID"`

	// Permission bitsets assigned to the roles created for a game. The
	// values are decimal strings as expected by the Discord API.
	PlayerRolePermissions string `env:"PLAYER_ROLE_PERMISSIONS" envDefault:"563362270661696"`
	GMRolePermissions     string `env:"GM_ROLE_PERMISSIONS" envDefault:"2815265163693120"`
}

// TrophyConfigs names the trophies awarded when a game is archived. The
// values are trophy ids seeded by the migration.
type TrophyConfigs struct {
	OneshotGM      string `env:"ONESHOT_GM" envDefault:"badge-os-gm"`
	OneshotPlayer  string `env:"ONESHOT_PLAYER" envDefault:"badge-os"`
	CampaignGM     string `env:"CAMPAIGN_GM" envDefault:"badge-campaign-gm"`
	CampaignPlayer string `env:"CAMPAIGN_PLAYER" envDefault:"badge-campaign"`
}

type RedisConfigs struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
}

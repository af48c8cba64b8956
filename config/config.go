package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	BackendRemote   = "remote"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Flights  FlightsConfig  `yaml:"flights"`
	Booking  BookingConfig  `yaml:"booking"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	FlightsTopic string   `yaml:"flights_topic"`
	GroupID      string   `yaml:"group_id"`
}

// FlightsConfig selects where flights come from: a remote flight API or the
// local postgres database.
type FlightsConfig struct {
	Backend         string `yaml:"backend"`
	BaseURL         string `yaml:"base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

func (f FlightsConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

func (f FlightsConfig) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLSeconds) * time.Second
}

// BookingConfig seeds the booking state at startup.
type BookingConfig struct {
	User    UserConfig     `yaml:"user"`
	Tickets []TicketConfig `yaml:"tickets"`
}

type UserConfig struct {
	PassengerID int64  `yaml:"passenger_id"`
	Username    string `yaml:"username"`
}

type TicketConfig struct {
	ID          int64 `yaml:"id"`
	PassengerID int64 `yaml:"passenger_id"`
	FlightID    int64 `yaml:"flight_id"`
}

func (b BookingConfig) DomainUser() domain.User {
	return domain.User{PassengerID: b.User.PassengerID, Username: b.User.Username}
}

func (t TicketConfig) DomainTicket() domain.Ticket {
	return domain.Ticket{PassengerID: t.PassengerID, FlightID: t.FlightID}
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Flights.Backend == "" {
		c.Flights.Backend = BackendRemote
	}
	if c.Flights.TimeoutSeconds == 0 {
		c.Flights.TimeoutSeconds = 10
	}
	if c.Flights.CacheTTLSeconds <= 0 {
		c.Flights.CacheTTLSeconds = 60
	}
	if c.Kafka.FlightsTopic == "" {
		c.Kafka.FlightsTopic = "flights"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Booking.User.Username == "" && len(c.Booking.Tickets) == 0 {
		c.Booking = DemoBooking()
	}
}

// DemoBooking is the seed used when no booking section is configured.
func DemoBooking() BookingConfig {
	return BookingConfig{
		User: UserConfig{PassengerID: 1, Username: "jane.doe"},
		Tickets: []TicketConfig{
			{ID: 2, PassengerID: 1, FlightID: 165},
			{ID: 1, PassengerID: 1, FlightID: 163},
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Flights.Backend {
	case BackendRemote:
		if c.Flights.BaseURL == "" {
			errs = append(errs, errors.New("flights.base_url is required for the remote backend"))
		}
	case BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown flights.backend %q", c.Flights.Backend))
	}

	seen := make(map[int64]bool, len(c.Booking.Tickets))
	for _, t := range c.Booking.Tickets {
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate ticket id %d", t.ID))
		}
		seen[t.ID] = true
	}
	return errors.Join(errs...)
}

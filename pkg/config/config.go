package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	StoreDriver      string        `envconfig:"STORE_DRIVER" default:"dynamodb"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"us-east-1"`
	OrderTableName   string        `envconfig:"ORDER_TABLE_NAME" default:"bakery-orders"`
	DynamoDBEndpoint string        `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local endpoint
	StoreTimeout     time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	KafkaBrokers      string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	NotificationTopic string `envconfig:"NOTIFICATION_TOPIC" default:"bakery-notifications"`

	SchedulerURL     string        `envconfig:"SCHEDULER_URL" default:""`
	SchedulerTimeout time.Duration `envconfig:"SCHEDULER_TIMEOUT" default:"3s"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	OwnerUser     string `envconfig:"OWNER_USER" default:"owner"`
	OwnerPassword string `envconfig:"OWNER_PASSWORD" default:"owner-secret"`
	StaffUser     string `envconfig:"STAFF_USER" default:"staff"`
	StaffPassword string `envconfig:"STAFF_PASSWORD" default:"staff-secret"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

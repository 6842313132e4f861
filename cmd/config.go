package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	KafkaBrokers          string
	KafkaOrderEventsTopic string

	RedisAddr     string
	RedisPassword string

	OutboxRelaySchedule string
	OutboxBatchSize     int

	LogLevel string
}

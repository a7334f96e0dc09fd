package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Draft persistence: memory, redis or postgres
	DraftStore     string `envconfig:"DRAFT_STORE" default:"memory"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisNamespace string `envconfig:"REDIS_NAMESPACE" default:"docurequest"`

	// Uploaded supporting documents go to S3 when a bucket is set
	S3BucketName   string `envconfig:"S3_BUCKET_NAME"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// Stub gateway latency, ignored when DATABASE_URL is set
	GatewayDelayMS    int  `envconfig:"GATEWAY_DELAY_MS" default:"1500"`
	GatewayTimeoutSec uint `envconfig:"GATEWAY_TIMEOUT_SEC" default:"30"`

	SessionMaxAgeSec int  `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days
	CookieSecure     bool `envconfig:"COOKIE_SECURE" default:"true"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}

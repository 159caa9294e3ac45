package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Slack   SlackConfig   `mapstructure:"slack"`
	Mail    MailConfig    `mapstructure:"mail"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Audit   AuditConfig   `mapstructure:"audit"`
	Athena  AthenaConfig  `mapstructure:"athena"`
	CRM     CRMConfig     `mapstructure:"crm"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// SlackConfig holds the chat platform settings. The verification token is
// the shared secret checked on every interactive callback and slash command.
type SlackConfig struct {
	WebhookURL        string `mapstructure:"webhook_url"`
	VerificationToken string `mapstructure:"verification_token"`
	SlashTopicARN     string `mapstructure:"slash_topic_arn"`
}

// MailConfig selects and configures the outbound email provider.
type MailConfig struct {
	Provider string        `mapstructure:"provider"` // ses or mailgun
	From     string        `mapstructure:"from"`
	Template string        `mapstructure:"template"`
	Mailgun  MailgunConfig `mapstructure:"mailgun"`
}

type MailgunConfig struct {
	APIKey string `mapstructure:"api_key"`
	Domain string `mapstructure:"domain"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// AuditConfig configures the audit log store. An empty bucket disables
// audit logging entirely.
type AuditConfig struct {
	Bucket string `mapstructure:"bucket"`
}

// AthenaConfig configures the analytical query engine. An empty database
// disables slash-command querying.
type AthenaConfig struct {
	Database     string `mapstructure:"database"`
	Table        string `mapstructure:"table"`
	Workgroup    string `mapstructure:"workgroup"`
	PollInterval int    `mapstructure:"poll_interval"` // milliseconds
}

// CRMConfig holds the NationBuilder registration settings.
type CRMConfig struct {
	Slug  string `mapstructure:"slug"`
	Token string `mapstructure:"token"`
	Tags  string `mapstructure:"tags"` // comma-separated
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

package notify

// Config holds configuration for the mail notifier.
type Config struct {
	// Enabled turns diff notification mails on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Host is the SMTP host.
	Host string `mapstructure:"host" default:""`
	// Port is the SMTP port.
	Port int `mapstructure:"port" default:"465"`
	// User is the SMTP username.
	User string `mapstructure:"user" default:""`
	// Password is the SMTP password.
	Password string `mapstructure:"password" default:""`
	// From is the sender address.
	From string `mapstructure:"from" default:"Renting Scraper <renting-scraper@localhost>"`
	// Recipient is the destination address.
	Recipient string `mapstructure:"recipient" default:""`
}

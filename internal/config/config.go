package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database

	PayOS   PayOS   `envPrefix:"PAYOS_"`
	Blynk   Blynk   `envPrefix:"BLYNK_"`
	Email   Email   `envPrefix:"EMAIL_"`
	Pricing Pricing `envPrefix:"PRICING_"`
}

type PayOS struct {
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://api-merchant.payos.vn"`
	ClientID    string `env:"CLIENT_ID"`
	APIKey      string `env:"API_KEY"`
	ChecksumKey string `env:"CHECKSUM_KEY"`
	ReturnURL   string `env:"RETURN_URL"`
	CancelURL   string `env:"CANCEL_URL"`
}

type Blynk struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://blynk.cloud"`
	Token   string `env:"TOKEN"`
	// MessagePin receives the paid announcement; each station's authorized
	// energy goes to pin "v<station>".
	MessagePin string `env:"MESSAGE_PIN" envDefault:"v0"`
}

type Email struct {
	BaseURL    string `env:"BASE_URL"`
	APIKey     string `env:"API_KEY"`
	TemplateID string `env:"TEMPLATE_ID" envDefault:"charging-receipt"`
	Sender     string `env:"SENDER"`
}

type Pricing struct {
	// UnitPrice is the charge per kWh in minor currency units.
	UnitPrice int64 `env:"UNIT_PRICE" envDefault:"5000"`
	// Stations lists the recognized charging bays.
	Stations []int `env:"STATIONS" envDefault:"1,2"`
}

type Database struct {
	Path string `env:"DATABASE_PATH" envDefault:"relay.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

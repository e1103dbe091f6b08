package cmd

// Config carries the process configuration loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	WhatsAppAPIURL     string
	WhatsAppAuthToken  string
	WhatsAppFromNumber string

	// RiderCutBps is the rider earnings cut in basis points of the order
	// price. Zero falls back to the domain default of 1500 (15%).
	RiderCutBps int64
}

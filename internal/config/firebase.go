package config

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	DatabaseURL     string `yaml:"database_url"`
	CredentialsFile string `yaml:"credentials_file"`
	// CredentialsJSON holds the service account document inline, for hosts
	// that only offer environment variables.
	CredentialsJSON string `yaml:"credentials_json"`
}

func loadFirebaseConfig() *FirebaseConfig {
	return &FirebaseConfig{
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		CredentialsJSON: getEnv("FIREBASE_ADMIN_JSON", ""),
	}
}

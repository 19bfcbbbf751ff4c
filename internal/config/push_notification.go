package config

import "time"

const (
	PushProviderFCM  = "fcm"
	PushProviderAPNS = "apns"
)

type PushConfig struct {
	Provider string      `yaml:"provider"`
	APNS     *APNSConfig `yaml:"apns"`
	// Alert* shape the emergency broadcast. Status notifications use the
	// platform defaults.
	AlertSound            string        `yaml:"alert_sound"`
	AlertTTL              time.Duration `yaml:"alert_ttl"`
	AlertAndroidChannelID string        `yaml:"alert_android_channel_id"`
}

// FCM reuses the Firebase app credentials; see FirebaseConfig.

type APNSConfig struct {
	KeyID      string `yaml:"key_id"`
	TeamID     string `yaml:"team_id"`
	BundleID   string `yaml:"bundle_id"`
	KeyFile    string `yaml:"key_file"`
	Production bool   `yaml:"production"`
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Provider:              getEnv("PUSH_PROVIDER", PushProviderFCM),
		AlertSound:            getEnv("PUSH_ALERT_SOUND", "default"),
		AlertTTL:              getEnvAsDuration("PUSH_ALERT_TTL", time.Hour),
		AlertAndroidChannelID: getEnv("PUSH_ALERT_ANDROID_CHANNEL_ID", "emergency_alerts"),
		APNS: &APNSConfig{
			KeyID:      getEnv("APNS_KEY_ID", ""),
			TeamID:     getEnv("APNS_TEAM_ID", ""),
			BundleID:   getEnv("APNS_BUNDLE_ID", ""),
			KeyFile:    getEnv("APNS_KEY_FILE", ""),
			Production: getEnvAsBool("APNS_PRODUCTION", false),
		},
	}
}

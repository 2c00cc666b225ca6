package config

func defaultConfig() *Config {
	return &Config{
		DataDirectory:    "~/.local/share/edumind",
		BackendHost:      "http://localhost:5000",
		TimeoutSeconds:   60,
		TypingIntervalMs: 20,
	}
}

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/edumind",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			Host:           "http://localhost:5000",
			TimeoutSeconds: 60,
		},
		Chat: ChatConfig{
			TypingIntervalMs: 20,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# EduMind System Configuration
# Location: ~/.config/edumind/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions, quizzes and user config are stored
data_directory = "~/.local/share/edumind"
`
}

func GenerateUserConfigTemplate() string {
	return `# EduMind User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[backend]
# EduMind backend URL
host = "http://localhost:5000"

# Upper bound on a single answer request, in seconds
request_timeout_seconds = 60

[chat]
# Pause between revealed characters of an assistant reply, in milliseconds
typing_interval_ms = 20
`
}

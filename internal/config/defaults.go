package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"params_dir":       "./params",
		"campsite_cmd":     "python3",
		"campsite_args":    []string{"camping.py"},
		"tours_cmd":        "python3",
		"tours_args":       []string{"tours.py"},
		"checker_debug":    false,
		"signal":           SignalExitCode,
		"timeout":          0,
		"mail_transport":   TransportCommand,
		"mail_cmd":         "mail",
		"mail_from":        "",
		"campsite_subject": "Campsite",
		"tours_subject":    "TOURS AVAILABLE",
		"sms_from":         "",
		"state_dir":        "~/.recnotify/state",
		"max_history":      500,
		"show_progress":    false,
	}
}

// GetDefaultConfigTemplate returns a commented config.yml with the default values.
func GetDefaultConfigTemplate() string {
	return `# recnotify configuration

# Directory containing one KEY=VALUE parameter file per search
params_dir: ./params

# Checker commands. Parameter flags (--start-date, --parks, ...) are appended to the args.
campsite_cmd: python3
campsite_args: ["camping.py"]
tours_cmd: python3
tours_args: ["tours.py"]
checker_debug: false

# How a checker reports availability:
#   exit_code  - exit status 0 means available
#   line_count - any non-blank line on stdout means available
signal: exit_code

# Checker timeout in seconds (0 = no timeout)
timeout: 0

# Notification delivery
mail_transport: command   # command (local "mail" MTA) or sendgrid (needs SENDGRID_API_KEY)
mail_cmd: mail
mail_from: ""
campsite_subject: Campsite
tours_subject: TOURS AVAILABLE

# Twilio SMS sender number for PHONES recipients (needs TWILIO_ACCOUNT_SID/TWILIO_AUTH_TOKEN)
sms_from: ""

# History settings
state_dir: ~/.recnotify/state
max_history: 500

show_progress: false
`
}

// Package health checks that the checkers, mail transport and parameter directory a
// batch run depends on are in place.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/recnotify/internal/config"
	"github.com/ariel-frischer/recnotify/internal/notify"
	"github.com/ariel-frischer/recnotify/internal/params"
	"github.com/fatih/color"
)

// Twilio credential environment variables.
const (
	TwilioAccountSIDEnv = "TWILIO_ACCOUNT_SID"
	TwilioAuthTokenEnv  = "TWILIO_AUTH_TOKEN"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks for cfg and returns a report
func RunHealthChecks(cfg *config.Configuration) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 5),
		Passed: true,
	}

	report.add(CheckChecker("Campsite checker", cfg.CampsiteCmd, cfg.CampsiteArgs))
	report.add(CheckChecker("Tours checker", cfg.ToursCmd, cfg.ToursArgs))
	report.add(CheckMailTransport(cfg))
	report.add(CheckSMS(cfg.SMSFrom))
	report.add(CheckParamsDir(cfg.ParamsDir))

	return report
}

// CheckChecker checks that a checker executable is in PATH and, when its first
// argument is a script path, that the script exists
func CheckChecker(name, cmd string, args []string) CheckResult {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%q not found in PATH", cmd),
		}
	}

	if len(args) > 0 && looksLikeScript(args[0]) {
		if _, err := os.Stat(args[0]); err != nil {
			return CheckResult{
				Name:    name,
				Passed:  false,
				Message: fmt.Sprintf("script %s not found", args[0]),
			}
		}
		return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s %s", path, args[0])}
	}

	return CheckResult{Name: name, Passed: true, Message: path}
}

func looksLikeScript(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	switch filepath.Ext(arg) {
	case ".py", ".sh", ".rb", ".js", ".pl":
		return true
	}
	return strings.ContainsRune(arg, filepath.Separator)
}

// CheckMailTransport checks the configured email delivery path
func CheckMailTransport(cfg *config.Configuration) CheckResult {
	const name = "Mail transport"

	switch cfg.MailTransport {
	case config.TransportSendGrid:
		if os.Getenv(notify.SendGridKeyEnv) == "" {
			return CheckResult{Name: name, Passed: false, Message: notify.SendGridKeyEnv + " is not set"}
		}
		return CheckResult{Name: name, Passed: true, Message: "sendgrid from " + cfg.MailFrom}
	default:
		sender := notify.NewCommandSender(cfg.MailCmd, cfg.MailFrom)
		if !sender.Available() {
			return CheckResult{
				Name:    name,
				Passed:  false,
				Message: fmt.Sprintf("mail command %q not found in PATH (install mailutils or set mail_cmd)", cfg.MailCmd),
			}
		}
		return CheckResult{Name: name, Passed: true, Message: sender.Name()}
	}
}

// CheckSMS checks Twilio credentials when SMS is enabled
func CheckSMS(smsFrom string) CheckResult {
	const name = "SMS"

	if smsFrom == "" {
		return CheckResult{Name: name, Passed: true, Message: "disabled (sms_from not set)"}
	}

	var missing []string
	for _, env := range []string{TwilioAccountSIDEnv, TwilioAuthTokenEnv} {
		if os.Getenv(env) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return CheckResult{Name: name, Passed: false, Message: strings.Join(missing, ", ") + " not set"}
	}
	return CheckResult{Name: name, Passed: true, Message: "twilio from " + smsFrom}
}

// CheckParamsDir checks that the parameter directory exists and reports how many
// files it holds
func CheckParamsDir(dir string) CheckResult {
	const name = "Parameter directory"

	files, err := params.List(dir)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s: %v", dir, err)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s (%d files)", dir, len(files))}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("%s %s: %s\n", green("✓"), check.Name, check.Message)
		} else {
			output += fmt.Sprintf("%s %s: %s\n", red("✗ Error:"), check.Name, check.Message)
		}
	}

	return output
}

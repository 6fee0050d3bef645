// Package config_test tests the doctor and init commands through the root command.
// Related: internal/cli/config/doctor.go, internal/cli/config/init_cmd.go
// Tags: config, cli, doctor, init

package config_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/recnotify/internal/cli"
	"github.com/ariel-frischer/recnotify/internal/config"
	"github.com/ariel-frischer/recnotify/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

func TestDoctor(t *testing.T) {
	tests := map[string]struct {
		mailCmd  string
		smsFrom  string
		wantCode int
		want     []string
	}{
		"all checks pass": {
			wantCode: cli.ExitSuccess,
			want: []string{
				"✓ Campsite checker: ",
				"✓ Mail transport: ",
				"✓ SMS: disabled (sms_from not set)",
				"(0 files)",
			},
		},
		"missing mail command": {
			mailCmd:  "recnotify-no-such-mail",
			wantCode: cli.ExitMissingDependencies,
			want:     []string{`✗ Error: Mail transport: mail command "recnotify-no-such-mail" not found in PATH`},
		},
		"sms without credentials": {
			smsFrom:  "+15550001111",
			wantCode: cli.ExitMissingDependencies,
			want:     []string{"✗ Error: SMS: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN not set"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			testutil.ClearAPIKeys(t)

			dir := t.TempDir()
			checker := testutil.NewFakeChecker(t, dir, "checker", "", 1)
			mail := tt.mailCmd
			if mail == "" {
				mail = testutil.WriteScript(t, dir, "mail", "cat >/dev/null\n")
			}
			cfgPath := filepath.Join(dir, "config.yml")
			testutil.WriteFile(t, cfgPath, fmt.Sprintf(`params_dir: %s
campsite_cmd: %s
campsite_args: []
tours_cmd: %s
tours_args: []
mail_cmd: %s
sms_from: %q
`, t.TempDir(), checker.Path, checker.Path, mail, tt.smsFrom))

			out, err := execute(t, "doctor", "--config", cfgPath)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestInit(t *testing.T) {
	tests := map[string]struct {
		existing  string
		args      []string
		wantBody  string
		wantOut   string
		useGlobal bool
	}{
		"creates project config": {
			wantBody: config.GetDefaultConfigTemplate(),
			wantOut:  "Created ",
		},
		"keeps existing config": {
			existing: "params_dir: ./mine\n",
			wantBody: "params_dir: ./mine\n",
			wantOut:  "Config already exists",
		},
		"force overwrites": {
			existing: "params_dir: ./mine\n",
			args:     []string{"--force"},
			wantBody: config.GetDefaultConfigTemplate(),
			wantOut:  "Created ",
		},
		"global": {
			args:      []string{"--global"},
			wantBody:  config.GetDefaultConfigTemplate(),
			wantOut:   "Created ",
			useGlobal: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)

			path := filepath.Join(t.TempDir(), ".recnotify", "config.yml")
			if tt.existing != "" {
				testutil.WriteFile(t, path, tt.existing)
			}

			args := append([]string{"init", "--config", path}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)

			if tt.useGlobal {
				globalPath, err := config.GlobalConfigPath()
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(home, ".recnotify", "config.yml"), globalPath)
				path = globalPath
			}
			assert.Equal(t, tt.wantBody, testutil.ReadFile(t, path))
		})
	}
}

func TestInit_DefaultTemplateLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yml")
	_, err := execute(t, "init", "--config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaults()["params_dir"], cfg.ParamsDir)
}

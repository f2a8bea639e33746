package login

import (
	"html"
	"strings"
	"text/template"
)

const launchAgentLabel = "io.pushmic"

// forwardedEnv are the variables copied into the login environment so the
// agent uses the same config and log locations as the session that enabled it.
var forwardedEnv = []string{"PUSHMIC_CONFIG", "PUSHMIC_LOG_PATH"}

var plistTmpl = template.Must(template.New("plist").Funcs(template.FuncMap{"x": html.EscapeString}).Parse(
	`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{x .Label}}</string>
	<key>ProgramArguments</key>
	<array>
{{- range .Argv}}
		<string>{{x .}}</string>
{{- end}}
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
{{- if .Env}}
	<key>EnvironmentVariables</key>
	<dict>
{{- range .Env}}
		<key>{{x .Key}}</key>
		<string>{{x .Value}}</string>
{{- end}}
	</dict>
{{- end}}
</dict>
</plist>
`))

type envVar struct{ Key, Value string }

// renderPlist builds the LaunchAgent for exe. getenv supplies the forwarded
// variables; unset ones are left out.
func renderPlist(exe string, getenv func(string) string) string {
	data := struct {
		Label string
		Argv  []string
		Env   []envVar
	}{Label: launchAgentLabel, Argv: append([]string{exe}, Args...)}
	for _, k := range forwardedEnv {
		if v := getenv(k); v != "" {
			data.Env = append(data.Env, envVar{k, v})
		}
	}
	var b strings.Builder
	if err := plistTmpl.Execute(&b, data); err != nil {
		// The template and its inputs are fixed strings.
		panic(err)
	}
	return b.String()
}

package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Typewriter Scanner</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
table.info th { width: 40%; }
.pressed { color: green; font-weight: bold; }
.idle { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Typewriter Scanner</h1>

<h2>Last Key</h2>
<table class="info">
{{if .LastSymbol}}<tr><th>Key</th><td class="pressed">{{.LastSymbol}}</td></tr>
<tr><th>Pin</th><td>{{.LastPin}}</td></tr>
<tr><th>At</th><td>{{.LastPressAt.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
{{else}}<tr><th>Key</th><td>none yet</td></tr>
{{end}}</table>

<h2>Keys</h2>
<table>
<tr><th>Pin</th><th>Key</th><th>Level</th><th>Count</th></tr>
{{range .Keys}}<tr><td>{{.Pin}}</td><td>{{.Symbol}}</td><td class="{{if .Pressed}}pressed{{else}}idle{{end}}">{{if .Pressed}}PRESSED{{else}}IDLE{{end}}</td><td>{{.Count}}</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table class="info">
<tr><th>Serial</th><td>{{.Config.Device}} @ {{.Config.Baud}} ({{.Config.Format}})</td></tr>
<tr><th>Serial write errors</th><td>{{.SerialErrors}}</td></tr>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{else}}<tr><th>MQTT</th><td>disabled</td></tr>
{{end}}</table>

<h2>System</h2>
<table class="info">
<tr><th>Total presses</th><td>{{.TotalPresses}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Hold-off</th><td>{{.Config.HoldoffMs}}ms ({{.Config.Strategy}})</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>GPIO read errors</th><td>{{.GPIOErrors}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}

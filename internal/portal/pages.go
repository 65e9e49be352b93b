package portal

import "html/template"

// pages holds the whole UI: a single server-rendered page whose
// sections follow the device state. The websocket refreshes it live.
var pages = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AC Control Setup</title>
<style>
body { font-family: sans-serif; max-width: 36em; margin: 2em auto; padding: 0 1em; }
fieldset { margin-bottom: 1.5em; }
label { display: block; margin: 0.5em 0 0.2em; }
input, select { width: 100%; padding: 0.4em; }
button { margin-top: 0.8em; padding: 0.5em 1.2em; }
.danger { color: #b00; }
table { border-collapse: collapse; }
td { padding: 0.2em 0.8em 0.2em 0; }
</style>
</head>
<body>
<h1>AC Control Setup</h1>

<table>
<tr><td>Device</td><td>{{.st.DeviceID}}</td></tr>
<tr><td>Firmware</td><td>{{.st.Firmware}}</td></tr>
<tr><td>State</td><td id="state">{{.st.State}}</td></tr>
<tr><td>Broker</td><td>{{if .st.Connected}}connected{{else}}offline{{end}}</td></tr>
</table>

{{if not .st.Config.HasNetwork}}
<fieldset>
<legend>Wi-Fi network</legend>
<form method="post" action="/submit">
<label for="ssid">Network name</label>
<input id="ssid" name="ssid" required>
<label for="password">Password</label>
<input id="password" name="password" type="password">
<button type="submit">Connect</button>
</form>
</fieldset>
{{end}}

{{if and .st.Config.HasNetwork (not .st.Config.Complete)}}
{{if .st.Prompt}}
<fieldset>
<legend>Protocol test {{.st.Prompt.Index}} / {{.st.Prompt.Total}}</legend>
<p>A test command was just sent with protocol <b>{{.st.Prompt.Protocol}}</b>.
Did the air conditioner react?</p>
<form method="post" action="/result" style="display:inline">
<input type="hidden" name="worked" value="yes">
<button type="submit">Yes, it worked</button>
</form>
<form method="post" action="/result" style="display:inline">
<input type="hidden" name="worked" value="no">
<button type="submit">No, try next</button>
</form>
</fieldset>
{{else}}
<fieldset>
<legend>Device identity</legend>
<form method="post" action="/config">
<label for="customer_id">Customer ID</label>
<input id="customer_id" name="customer_id" required>
<label for="zone_id">Zone ID</label>
<input id="zone_id" name="zone_id" required>
<label for="brand">AC brand</label>
<select id="brand" name="brand">
{{range .brands}}<option>{{.}}</option>
{{end}}</select>
<label><input type="checkbox" name="skip_testing" style="width:auto"> Skip protocol testing</label>
<button type="submit">Configure</button>
</form>
</fieldset>
{{end}}
{{end}}

{{if .st.Config.Complete}}
<fieldset>
<legend>Air conditioner</legend>
<table>
<tr><td>Brand</td><td>{{.st.Config.ACBrand}} ({{.st.Config.ACProtocol}})</td></tr>
<tr><td>Power</td><td>{{if .st.ACState.Power}}on{{else}}off{{end}}</td></tr>
<tr><td>Mode</td><td>{{.st.ACState.Mode}}</td></tr>
<tr><td>Temperature</td><td>{{.st.ACState.TemperatureC}} &deg;C</td></tr>
<tr><td>Fan</td><td>{{.st.ACState.FanSpeed}}</td></tr>
</table>
</fieldset>
{{end}}

{{if .st.Events}}
<fieldset>
<legend>Recent events</legend>
<table>
{{range .st.Events}}<tr><td>{{.OccurredAt}}</td><td>{{.Type}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
</fieldset>
{{end}}

<form method="post" action="/reset" onsubmit="return confirm('Erase all settings?')">
<button type="submit" class="danger">Factory reset</button>
</form>

<script>
(function () {
  var proto = location.protocol === "https:" ? "wss" : "ws";
  var ws = new WebSocket(proto + "://" + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type !== "status") { return; }
    var el = document.getElementById("state");
    if (el && el.textContent !== msg.data.state) { location.reload(); }
  };
})();
</script>
</body>
</html>
`))

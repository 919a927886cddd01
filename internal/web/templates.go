// internal/web/templates.go
package web

import "html/template"

var (
	tableTmpl = template.Must(template.New("table").Parse(tableHTML))
	lobbyTmpl = template.Must(template.New("lobby").Parse(lobbyHTML))
)

const tableHTML = `<!DOCTYPE html>
<html><head><title>UNO - Player {{.Seat}}</title>
<style>
body { font-family: 'Segoe UI', monospace; padding: 1.5em; background: #1a1a2e; color: #e0e0e0; font-size: 16px; margin: 0 auto; max-width: 900px; }
h2 { margin: 0.3em 0; }
.table { background: #16213e; padding: 16px; border-radius: 10px; margin: 12px 0; display: flex; align-items: center; gap: 20px; flex-wrap: wrap; }
.top-card { display: inline-block; padding: 14px 22px; border-radius: 10px; font-weight: bold; font-size: 18px; color: #fff; border: 3px solid #fff3; }
.status { font-size: 20px; font-weight: bold; margin: 10px 0; }
.flash { padding: 10px 16px; border-radius: 6px; margin-bottom: 16px; color: #fff; }
.card-btn { padding: 10px 16px; border: 2px solid #555; border-radius: 8px; cursor: pointer; font-weight: bold; font-size: 15px; color: #fff; margin: 4px; }
.color-btn { padding: 6px 14px; border: none; border-radius: 4px; cursor: pointer; font-weight: bold; font-size: 14px; color: #fff; margin: 2px; }
.big-btn { padding: 12px 28px; border: none; border-radius: 8px; cursor: pointer; font-size: 16px; font-weight: bold; color: #fff; }
.tag { padding: 4px 10px; border-radius: 4px; font-weight: bold; font-size: 13px; color: #fff; text-decoration: none; }
</style>
</head><body>
{{if .Err}}<div class="flash" style="background:#c0392b;">{{.Err}}</div>
{{else if .Msg}}<div class="flash" style="background:#27ae60;">{{.Msg}}</div>{{end}}
<h2>UNO &mdash; Player {{.Seat}}</h2>
<div style="display:flex;align-items:center;gap:12px;margin:8px 0;">
  <div class="status">{{.StatusLine}}</div>
  {{if .Auto}}<span class="tag" style="background:#e74c3c;">AUTO MODE: ON</span>{{end}}
  <a class="tag" href="/?auto={{if .Auto}}0{{else}}1{{end}}" style="background:{{if .Auto}}#c0392b{{else}}#27ae60{{end}};">{{if .Auto}}Stop Auto{{else}}Start Auto{{end}}</a>
</div>
<form id="auto-form" method="post" action="/auto" style="display:none;"></form>
<div style="color:#aaa;font-size:14px;margin-bottom:8px;">{{.LastAction}}</div>

<div class="table">
  <div>Top card: <span class="top-card" style="background:{{.Top.CSS}};">{{.Top.Token}}</span></div>
  <div>Current color: <span style="color:{{.ColorCSS}};font-weight:bold;">{{.CurrentColor}}</span></div>
  <div>Draw pile: {{.DrawCount}} cards</div>
  {{range .Opponents}}<div>{{.Label}}: {{.Count}} cards</div>{{end}}
  {{if .Direction}}<div>Direction: {{.Direction}}</div>{{end}}
</div>

<h3>Your Hand ({{.HandCount}} cards)</h3>
<div>
{{range .Hand}}{{if .Wild}}{{$card := .}}
  <div style="display:inline-block;background:#333;border-radius:8px;padding:8px;margin:4px;vertical-align:top;text-align:center;">
    <div style="font-weight:bold;margin-bottom:6px;color:#ccc;">{{.Token}}</div>
    {{range $.Colors}}<form method="post" action="/play" style="display:inline;">
      <input type="hidden" name="card" value="{{$card.Token}}">
      <input type="hidden" name="chosen_color" value="{{.Name}}">
      <button type="submit" class="color-btn" style="background:{{.CSS}};"{{if not $.CanMove}} disabled{{end}}>{{.Initial}}</button>
    </form>{{end}}
  </div>
{{else}}
  <form method="post" action="/play" style="display:inline;">
    <input type="hidden" name="card" value="{{.Token}}">
    <button type="submit" class="card-btn" style="background:{{.CSS}};"{{if not $.CanMove}} disabled{{end}}>{{.Token}}</button>
  </form>
{{end}}{{end}}
</div>

<form method="post" action="/draw" style="margin-top:12px;">
  <button type="submit" class="big-btn" style="background:#444;border:2px solid #888;"{{if not .CanMove}} disabled{{end}}>Draw Card</button>
</form>

{{if and .LobbyMode .Over}}
<div style="margin-top:20px;display:flex;gap:12px;">
  <form method="post" action="/new-game">
    <input type="hidden" name="num_players" value="{{.SeatCount}}">
    <button type="submit" class="big-btn" style="background:#27ae60;">New Game</button>
  </form>
  <form method="post" action="/end-game">
    <button type="submit" class="big-btn" style="background:#555;">Back to Lobby</button>
  </form>
</div>
{{end}}

{{if not .Over}}
<script>
(function() {
  var auto = {{.Auto}};
  var myTurn = {{.MyTurn}};
  if (auto && myTurn) {
    setTimeout(function() { document.getElementById("auto-form").submit(); }, 1000);
    return;
  }
  function reload() { location.replace("/" + (auto ? "?auto=1" : "")); }
  var ws = null;
  try { ws = new WebSocket("ws://" + location.host + "/ws"); } catch (e) {}
  if (ws) {
    ws.onmessage = reload;
    ws.onerror = function() { setTimeout(reload, 2000); };
  } else {
    setTimeout(reload, 2000);
  }
})();
</script>
{{end}}
</body></html>`

const lobbyHTML = `<!DOCTYPE html>
<html><head><title>UNO - Lobby</title>
<style>
body { font-family: 'Segoe UI', monospace; padding: 2em; background: #1a1a2e; color: #e0e0e0; text-align: center; }
h1 { font-size: 48px; margin-bottom: 8px; }
.subtitle { color: #aaa; margin-bottom: 40px; font-size: 18px; }
.buttons { display: flex; gap: 20px; justify-content: center; flex-wrap: wrap; }
.btn { padding: 24px 48px; border: none; border-radius: 12px; cursor: pointer; font-weight: bold; font-size: 20px; color: #fff; transition: transform 0.1s; }
.btn:hover { transform: scale(1.05); }
.btn:active { transform: scale(0.98); }
</style></head><body>
<h1>UNO</h1>
<div class="subtitle">Choose number of players to start a game</div>
<div class="buttons">
  <form method="post" action="/new-game">
    <input type="hidden" name="num_players" value="2">
    <button class="btn" style="background:#e74c3c;">2 Players</button>
  </form>
  <form method="post" action="/new-game">
    <input type="hidden" name="num_players" value="3">
    <button class="btn" style="background:#2ecc71;">3 Players</button>
  </form>
  <form method="post" action="/new-game">
    <input type="hidden" name="num_players" value="4">
    <button class="btn" style="background:#3498db;">4 Players</button>
  </form>
</div>
</body></html>`

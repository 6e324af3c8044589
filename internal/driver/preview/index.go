package preview

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>neomatrix preview</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; }
canvas { image-rendering: pixelated; border: 1px solid #333; }
</style>
</head>
<body>
<canvas id="m"></canvas>
<p id="s">connecting</p>
<script>
const cell = 24;
const canvas = document.getElementById("m");
const ctx = canvas.getContext("2d");
const status = document.getElementById("s");

function coords(i, f) {
  const y = Math.floor(i / f.width);
  let x = i % f.width;
  if (!f.progressive && y % 2 === 1) x = f.width - 1 - x;
  return [x, y];
}

function draw(f) {
  canvas.width = f.width * cell;
  canvas.height = f.height * cell;
  ctx.fillStyle = "#000";
  ctx.fillRect(0, 0, canvas.width, canvas.height);
  for (let i = 0; i * 6 < f.pixels.length; i++) {
    const [x, y] = coords(i, f);
    ctx.fillStyle = "#" + f.pixels.substr(i * 6, 6);
    ctx.beginPath();
    ctx.arc(x * cell + cell / 2, y * cell + cell / 2, cell * 0.4, 0, 2 * Math.PI);
    ctx.fill();
  }
  status.textContent = "frame " + f.frame;
}

function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = (e) => draw(JSON.parse(e.data));
  ws.onclose = () => { status.textContent = "disconnected"; setTimeout(connect, 1000); };
}
connect();
</script>
</body>
</html>
`

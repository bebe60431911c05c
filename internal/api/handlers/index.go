package handlers

// indexHTML is the minimal scanner page served at the root. It drives the
// JSON API from the browser; everything else lives behind /api.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Ultimate Squeeze Scanner</title>
    <style>
        body { font-family: -apple-system, sans-serif; background: #0d1117; color: #e6edf3; margin: 0; padding: 24px; }
        h1 { color: #ff6b6b; }
        button { background: #ff6b6b; color: #fff; border: none; padding: 10px 18px; border-radius: 6px; cursor: pointer; font-size: 15px; }
        button:disabled { opacity: 0.5; cursor: default; }
        table { border-collapse: collapse; margin-top: 16px; width: 100%; }
        th, td { border: 1px solid #30363d; padding: 6px 10px; text-align: left; }
        .stats { margin-top: 12px; color: #8b949e; }
    </style>
</head>
<body>
    <h1>Ultimate Squeeze Scanner</h1>
    <button id="scan">Run Scan</button>
    <div class="stats" id="stats"></div>
    <table id="results" hidden>
        <thead><tr><th>Ticker</th><th>Score</th><th>Type</th><th>Price</th><th>Change %</th><th>Quality</th></tr></thead>
        <tbody></tbody>
    </table>
    <script>
        const btn = document.getElementById('scan');
        btn.addEventListener('click', async () => {
            btn.disabled = true;
            document.getElementById('stats').textContent = 'Scanning...';
            try {
                const resp = await fetch('/api/scan', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({})
                });
                const data = await resp.json();
                if (!data.success) throw new Error(data.error);
                const tbody = document.querySelector('#results tbody');
                tbody.innerHTML = '';
                for (const r of data.scan_results) {
                    const row = tbody.insertRow();
                    [r.ticker, r.squeeze_score, r.squeeze_type, '$' + r.current_price,
                     r.price_change_pct + '%', r.data_quality].forEach(v => row.insertCell().textContent = v);
                }
                document.getElementById('results').hidden = false;
                const s = data.scan_stats;
                document.getElementById('stats').textContent =
                    s.successful_analysis + '/' + s.total_tickers_scanned + ' tickers in ' +
                    s.scan_time_seconds + 's (' + s.performance_rating + ')';
            } catch (err) {
                document.getElementById('stats').textContent = 'Scan failed: ' + err.message;
            } finally {
                btn.disabled = false;
            }
        });
    </script>
</body>
</html>
`

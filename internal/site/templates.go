package site

// pageTemplate is the html/template for each documentation page. Diagrams
// live under the .md-content region the zoom runtime scans.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar">
    <h2 class="project-title">{{.ProjectName}}</h2>
    <div class="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <article class="{{.ContentClass}}">
      {{.Content}}
    </article>
  </main>
</body>
</html>`

// cssContent styles the site, the diagram containers and the fullscreen
// trigger added in interactive mode.
const cssContent = `:root {
  --fg: #1f2328;
  --muted: #59636e;
  --bg: #ffffff;
  --sidebar-bg: #f6f8fa;
  --border: #d1d9e0;
  --accent: #0969da;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  display: flex;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--fg);
  background: var(--bg);
}
.sidebar {
  width: 280px;
  min-height: 100vh;
  padding: 1rem;
  background: var(--sidebar-bg);
  border-right: 1px solid var(--border);
}
.sidebar ul { list-style: none; padding-left: 1rem; margin: 0; }
.sidebar > .sidebar-tree > ul { padding-left: 0; }
.sidebar a { color: var(--fg); text-decoration: none; }
.sidebar a.active { color: var(--accent); font-weight: 600; }
.sidebar .dir > span { color: var(--muted); font-weight: 600; }
.content { flex: 1; min-width: 0; padding: 2rem 3rem; }
.content pre { overflow-x: auto; padding: 1rem; border: 1px solid var(--border); border-radius: 6px; }
.mermaid {
  position: relative;
  width: 100%;
  min-height: 200px;
  height: 60vh;
  margin: 1.5rem 0;
  border: 1px solid var(--border);
  border-radius: 6px;
  overflow: hidden;
}
.mermaid svg { width: 100%; height: 100%; max-width: none !important; }
.diagram-fullscreen-btn:hover { background: var(--sidebar-bg); }
.diagram-zoom-overlay .mermaid { height: 100%; margin: 0; border: none; }
`

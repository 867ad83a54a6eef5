package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>tubedl</title></head>
<body>
<h1>tubedl</h1>
<p>YouTube video, audio and playlist downloader.</p>
<ul>
<li><code>POST /api/downloads</code> - start a download (json: url, kind, resolution, download_path, continue_on_error)</li>
<li><code>GET /api/downloads/current</code> - state of the running or last job</li>
<li><code>GET /api/preview?url=...</code> - metadata preview for a video or playlist</li>
<li><code>GET /api/history</code> - completed download history</li>
<li><a href="/history">download history table</a></li>
<li><code>GET /healthz</code> - liveness</li>
</ul>
</body>
</html>
`

var historyPage = template.Must(template.New("history").Parse(`<!DOCTYPE html>
<html>
<head><title>tubedl - history</title></head>
<body>
<h1>Download history</h1>
{{if .}}
<table border="1" cellpadding="4">
<tr><th>Title</th><th>URL</th><th>Type</th><th>Path</th><th>Downloaded at</th></tr>
{{range .}}
<tr>
<td>{{.Title}}</td>
<td><a href="{{.URL}}">{{.URL}}</a></td>
<td>{{.FileType}}</td>
<td>{{.DownloadPath}}</td>
<td>{{.Timestamp.Format "2006-01-02 15:04:05"}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No downloads yet.</p>
{{end}}
<p><a href="/">back</a></p>
</body>
</html>
`))

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// handleHistoryPage renders the history log as an HTML table.
func (s *Server) handleHistoryPage(c *gin.Context) {
	records, err := s.history.Load()
	if err != nil {
		c.String(http.StatusInternalServerError, "loading history: %v", err)
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := historyPage.Execute(c.Writer, records); err != nil {
		s.log.Error().Err(err).Msg("rendering history page")
	}
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Sajha Hub API</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: linear-gradient(135deg,#c8102e,#003893); color: #fff; min-height: 100vh; display: flex; flex-direction: column; }
header { flex: 1; padding: 60px 20px; text-align: center; }
code { background: rgba(255,255,255,0.15); padding: 2px 8px; border-radius: 4px; }
a { color: #fff; }
footer { text-align: center; padding: 20px; font-size: 14px; opacity: 0.8; }
</style>
</head>
<body>
<header>
  <h1>Sajha Hub</h1>
  <p>The community marketplace API for the Nepali diaspora.</p>
  <p>Browse the API docs at <a href="/swagger/index.html">/swagger</a> or check <code>GET /health</code>.</p>
</header>
<footer>Sajha Hub API</footer>
</body>
</html>`

func RegisterPages(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})
}

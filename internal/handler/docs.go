package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed openapi.json
var openapiSpec []byte

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>Silvershop API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({ url: "/api-docs/openapi.json", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

// Docs serves the embedded OpenAPI document.
func Docs(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openapiSpec)
}

// DocsUI serves a minimal Swagger UI page backed by the embedded document.
func DocsUI(c echo.Context) error {
	return c.HTML(http.StatusOK, docsPage)
}

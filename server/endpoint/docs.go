package endpoint

import (
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: "{{url}}", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

const redocPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{title}}</title>
</head>
<body>
  <redoc spec-url="{{url}}"></redoc>
  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>
`

// SwaggerUI serves an interactive documentation page for the document at specURL.
func SwaggerUI(title, specURL string) gin.HandlerFunc {
	return page(renderDocs(swaggerUIPage, title, specURL))
}

// ReDoc serves a read-only documentation page for the document at specURL.
func ReDoc(title, specURL string) gin.HandlerFunc {
	return page(renderDocs(redocPage, title, specURL))
}

func renderDocs(tmpl, title, specURL string) []byte {
	return []byte(strings.NewReplacer(
		"{{title}}", html.EscapeString(title),
		"{{url}}", html.EscapeString(specURL),
	).Replace(tmpl))
}

func page(body []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}

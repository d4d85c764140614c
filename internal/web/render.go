package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/brooksai/slashhub/internal/errors"
)

// markdown converts help text; GFM adds the tables the route listing uses.
// Raw HTML in the source is escaped (goldmark's default).
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; text-align: left; }
code { background: #f4f4f4; padding: 0 0.2rem; }
</style>
</head>
<body>
{{.Body}}
<footer><small>slashhub {{.Version}}</small></footer>
</body>
</html>
`))

// PageData is the template data for an HTML page.
type PageData struct {
	Title   string
	Version string
	Body    template.HTML
}

// renderPage writes a full HTML page.
func renderPage(w http.ResponseWriter, status int, data PageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError writes a JSON error body. Internal errors never carry details.
func renderError(w http.ResponseWriter, err error) {
	var hErr *errors.HubError
	if !stderrors.As(err, &hErr) {
		hErr = errors.NewInternal(err)
	}

	errorObj := map[string]any{
		"code":    string(hErr.Code),
		"message": hErr.Message,
		"status":  hErr.Status,
	}
	if hErr.Code == errors.ErrInternal {
		log.Printf("internal error: %v", err)
		errorObj["message"] = "an internal error occurred"
	} else if hErr.Details != nil {
		errorObj["details"] = hErr.Details
	}

	renderJSON(w, hErr.Status, map[string]any{"error": errorObj})
}

// hubErrorCode returns the code of the first HubError in err's chain, or
// INTERNAL when there is none.
func hubErrorCode(err error) errors.ErrorCode {
	var hErr *errors.HubError
	if stderrors.As(err, &hErr) {
		return hErr.Code
	}
	return errors.ErrInternal
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

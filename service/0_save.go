package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/rs/zerolog/log"
)

const examplesHost = "chainkv.example.com"

// Save writes a markdown example for an acceptance request when
// CHAINKV_EXAMPLES_PATH is set. Used to keep the API docs in sync with tests.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("CHAINKV_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request
	requestBody := prettyJSON(response.BodyRequestString())

	path := request.URL.Path
	if request.URL.RawQuery != "" {
		path += "?" + request.URL.RawQuery
	}

	md := &strings.Builder{}
	md.WriteString("# " + title + "\n")
	md.WriteString(unindent(description) + "\n")

	md.WriteString("Curl example:\n\n```sh\n")
	md.WriteString("curl -X " + request.Method + " \"https://" + examplesHost + path + "\"")
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			md.WriteString(" \\\n-H \"" + k + ": " + v + "\"")
		}
	}
	if requestBody != "" {
		md.WriteString(" \\\n-d '" + requestBody + "'")
	}
	md.WriteString("\n```\n\n")

	md.WriteString("HTTP request/response example:\n\n```http\n")
	md.WriteString(request.Method + " " + path + " " + request.Proto + "\n")
	md.WriteString("Host: " + examplesHost + "\n")
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			md.WriteString(k + ": " + v + "\n")
		}
	}
	md.WriteString("\n" + requestBody + "\n\n")

	md.WriteString(response.Proto + " " + response.Status + "\n")
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			continue
		}
		for _, v := range response.Header[k] {
			md.WriteString(k + ": " + v + "\n")
		}
	}
	md.WriteString("\n" + prettyJSON(response.BodyString()) + "\n```\n")

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := filepath.Join(examplesPath, filepath.Clean(filename))
	err := os.WriteFile(p, []byte(md.String()), 0666)
	if err != nil {
		log.Error().Err(err).Str("path", p).Msg("save example")
		return
	}
	log.Debug().Str("path", p).Msg("example saved")
}

func sortedKeys(h map[string][]string) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// prettyJSON indents a JSON document. JSON lines and non JSON bodies are
// returned unchanged.
func prettyJSON(body string) string {
	var i interface{}
	if err := json.Unmarshal([]byte(body), &i); err != nil {
		return body
	}
	b, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}
	return string(b)
}

// unindent removes the common leading tabs of a raw string literal written
// inline in Go code.
func unindent(d string) string {
	lines := strings.Split(d, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || tabs < minTabs {
			minTabs = tabs
		}
	}
	if minTabs <= 0 {
		return strings.TrimSpace(d) + "\n"
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n") + "\n"
}

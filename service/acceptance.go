package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func jsonLines(body string) []JSON {
	result := []JSON{}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		item := JSON{}
		json.Unmarshal([]byte(line), &item)
		result = append(result, item)
	}
	return result
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create index", func(a *biff.A) {
		resp := apiRequest("POST", "/indexes").
			WithBodyJson(JSON{
				"name":    "defines",
				"buckets": 100,
			}).Do()
		Save(resp, "Create index", `
			Creates an empty hash index with a fixed number of buckets.
			When ´buckets´ is omitted the configured default is used.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		body := resp.BodyJsonMap()
		biff.AssertEqual(body["name"], "defines")
		biff.AssertEqualJson(body["buckets"], 100)
		biff.AssertEqualJson(body["entries"], 0)

		a.Alternative("Create index again", func(a *biff.A) {
			resp := apiRequest("POST", "/indexes").
				WithBodyJson(JSON{"name": "defines"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("List indexes", func(a *biff.A) {
			resp := apiRequest("GET", "/indexes").Do()
			Save(resp, "List indexes", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			list := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(list), 1)
			biff.AssertEqual(list[0].(JSON)["name"], "defines")
		})

		a.Alternative("Install YES NO PI", func(a *biff.A) {
			for _, pair := range [][2]string{{"YES", "1"}, {"NO", "0"}, {"PI", "3.14159"}} {
				resp := apiRequest("POST", "/indexes/defines:install").
					WithBodyJson(JSON{
						"name":       pair[0],
						"definition": pair[1],
					}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			}

			a.Alternative("Update YES", func(a *biff.A) {
				resp := apiRequest("POST", "/indexes/defines:install").
					WithBodyJson(JSON{
						"name":       "YES",
						"definition": "42",
					}).Do()
				Save(resp, "Install", `
					Adds a name or replaces the definition of an existing one in place.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"bucket":     41,
					"name":       "YES",
					"definition": "42",
					"replaced":   true,
				})

				a.Alternative("Lookup YES", func(a *biff.A) {
					resp := apiRequest("POST", "/indexes/defines:lookup").
						WithBodyJson(JSON{"name": "YES"}).Do()
					Save(resp, "Lookup", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"bucket":     41,
						"name":       "YES",
						"definition": "42",
					})
				})
			})

			a.Alternative("Lookup MISSING", func(a *biff.A) {
				resp := apiRequest("POST", "/indexes/defines:lookup").
					WithBodyJson(JSON{"name": "MISSING"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Enumerate", func(a *biff.A) {
				resp := apiRequest("POST", "/indexes/defines:enumerate").Do()
				Save(resp, "Enumerate", `
					Streams one JSON line per entry, ascending bucket, then chain order.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(jsonLines(resp.BodyString()), []JSON{
					{"bucket": 41, "name": "YES", "definition": "1"},
					{"bucket": 53, "name": "PI", "definition": "3.14159"},
					{"bucket": 57, "name": "NO", "definition": "0"},
				})
			})

			a.Alternative("Enumerate with filter", func(a *biff.A) {
				resp := apiRequest("POST", "/indexes/defines:enumerate").
					WithBodyJson(JSON{
						"filter": JSON{"name": "PI"},
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(jsonLines(resp.BodyString()), []JSON{
					{"bucket": 53, "name": "PI", "definition": "3.14159"},
				})
			})

			a.Alternative("Clear", func(a *biff.A) {
				resp := apiRequest("POST", "/indexes/defines:clear").Do()
				Save(resp, "Clear", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"cleared": 3})

				resp = apiRequest("POST", "/indexes/defines:lookup").
					WithBodyJson(JSON{"name": "YES"}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Install empty name", func(a *biff.A) {
			resp := apiRequest("POST", "/indexes/defines:install").
				WithBodyJson(JSON{"name": "", "definition": "x"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Drop index", func(a *biff.A) {
			resp := apiRequest("POST", "/indexes/defines:drop").Do()
			Save(resp, "Drop index", ``)
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = apiRequest("GET", "/indexes/defines").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})
	})

	a.Alternative("Create map", func(a *biff.A) {
		resp := apiRequest("POST", "/maps").
			WithBodyJson(JSON{"name": "scores"}).Do()
		Save(resp, "Create map", `
			Creates an empty insertion-ordered map from text keys to integers.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqual(resp.BodyJsonMap()["name"], "scores")

		for _, e := range []JSON{
			{"key": "z", "value": 8},
			{"key": "z", "value": 1},
			{"key": "y", "value": 2},
			{"key": "b", "value": 3},
			{"key": "a", "value": 4},
		} {
			resp := apiRequest("POST", "/maps/scores:put").WithBodyJson(e).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		}

		a.Alternative("Get existing", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:get").
				WithBodyJson(JSON{"key": "z", "default": 42}).Do()
			Save(resp, "Get", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"key": "z", "value": 1, "found": true})
		})

		a.Alternative("Get missing", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:get").
				WithBodyJson(JSON{"key": "missing", "default": 42}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"key": "missing", "value": 42, "found": false})
		})

		a.Alternative("Size", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:size").Do()
			Save(resp, "Size", ``)

			biff.AssertEqualJson(resp.BodyJson(), JSON{"size": 4})
		})

		a.Alternative("Dump", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:dump").Do()
			Save(resp, "Dump", `
				Streams entries in insertion order, one JSON line each.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(jsonLines(resp.BodyString()), []JSON{
				{"key": "z", "value": 1},
				{"key": "y", "value": 2},
				{"key": "b", "value": 3},
				{"key": "a", "value": 4},
			})
		})

		a.Alternative("Dump reverse with filter and limit", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:dump").
				WithBodyJson(JSON{
					"reverse": true,
					"filter":  JSON{"value": JSON{"$gt": 1}},
					"limit":   2,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(jsonLines(resp.BodyString()), []JSON{
				{"key": "a", "value": 4},
				{"key": "b", "value": 3},
			})
		})

		a.Alternative("Iterate", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:iterate").Do()
			Save(resp, "Iterate", `
				Opens a cursor over the entries present right now.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			id := resp.BodyJsonMap()["id"].(string)

			a.Alternative("Next until exhausted", func(a *biff.A) {
				resp := apiRequest("POST", "/iterators/"+id+":next").
					WithBodyJson(JSON{"limit": 3}).Do()
				Save(resp, "Next", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"entries": []JSON{
						{"key": "z", "value": 1},
						{"key": "y", "value": 2},
						{"key": "b", "value": 3},
					},
					"exhausted": false,
				})

				resp = apiRequest("POST", "/iterators/"+id+":next").
					WithBodyJson(JSON{"limit": 3}).Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"entries":   []JSON{{"key": "a", "value": 4}},
					"exhausted": true,
				})

				resp = apiRequest("POST", "/iterators/"+id+":next").Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"entries":   []JSON{},
					"exhausted": true,
				})
			})

			a.Alternative("Close", func(a *biff.A) {
				resp := apiRequest("POST", "/iterators/"+id+":close").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/iterators/"+id+":next").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Drop map invalidates iterators", func(a *biff.A) {
				resp := apiRequest("POST", "/maps/scores:drop").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/iterators/"+id+":next").Do()
				Save(resp, "Next - invalidated", `
					The map was dropped while the cursor was open. The cursor is
					released after reporting it.
				`)
				biff.AssertEqual(resp.StatusCode, http.StatusGone)

				resp = apiRequest("POST", "/iterators/"+id+":next").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Put empty key", func(a *biff.A) {
			resp := apiRequest("POST", "/maps/scores:put").
				WithBodyJson(JSON{"key": "", "value": 1}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})
	})

	a.Alternative("Map not found", func(a *biff.A) {
		resp := apiRequest("POST", "/maps/nope:size").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}

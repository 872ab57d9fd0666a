package api

import (
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	"github.com/rs/zerolog"

	"github.com/fulldump/chainkv/database"
	"github.com/fulldump/chainkv/service"
)

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Buckets: 100,
		})

		biff.AssertNil(db.Load())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)

		s := service.NewService(db, zerolog.Nop())

		b := Build(s, "test")
		b.WithInterceptors(
			InterceptorUnavailable(s),
			RecoverFromPanic,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		})

	})
}

func TestUnavailable(t *testing.T) {

	db := database.NewDatabase(&database.Config{})
	s := service.NewService(db, zerolog.Nop())

	b := Build(s, "test")
	b.WithInterceptors(
		InterceptorUnavailable(s),
		RecoverFromPanic,
		PrettyErrorInterceptor,
	)

	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/v1/indexes").Do()
	biff.AssertEqual(resp.StatusCode, 503)
	biff.AssertEqualJson(resp.BodyJson(), map[string]interface{}{
		"error": map[string]interface{}{
			"message":     "temporary unavailable: opening",
			"description": "server is opening or closing",
		},
	})
}

func TestRelease(t *testing.T) {

	db := database.NewDatabase(&database.Config{})
	s := service.NewService(db, zerolog.Nop())

	api := apitest.NewWithHandler(Build(s, "v1.2.3"))

	resp := api.Request("GET", "/release").Do()
	biff.AssertEqual(resp.StatusCode, 200)
	biff.AssertEqual(resp.BodyJson(), "v1.2.3")
}

func TestAcceptance_Allocation(t *testing.T) {

	biff.Alternative("Setup with one entry per store", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Buckets:    100,
			MaxEntries: 1,
		})
		biff.AssertNil(db.Load())

		s := service.NewService(db, zerolog.Nop())

		b := Build(s, "test")
		b.WithInterceptors(
			InterceptorUnavailable(s),
			RecoverFromPanic,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("Map is full", func(a *biff.A) {
			api.Request("POST", "/v1/maps").WithBodyJson(map[string]interface{}{"name": "small"}).Do()

			resp := api.Request("POST", "/v1/maps/small:put").
				WithBodyJson(map[string]interface{}{"key": "a", "value": 1}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = api.Request("POST", "/v1/maps/small:put").
				WithBodyJson(map[string]interface{}{"key": "b", "value": 2}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusInsufficientStorage)
			biff.AssertEqualJson(resp.BodyJson(), map[string]interface{}{
				"error": map[string]interface{}{
					"message":     "put 'b': allocation error: no storage for a new entry",
					"description": "the map is full",
				},
			})

			resp = api.Request("POST", "/v1/maps/small:put").
				WithBodyJson(map[string]interface{}{"key": "a", "value": 10}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = api.Request("POST", "/v1/maps/small:get").
				WithBodyJson(map[string]interface{}{"key": "a"}).Do()
			biff.AssertEqualJson(resp.BodyJson(), map[string]interface{}{"key": "a", "value": 10, "found": true})
		})

		a.Alternative("Index is full", func(a *biff.A) {
			api.Request("POST", "/v1/indexes").WithBodyJson(map[string]interface{}{"name": "small"}).Do()

			resp := api.Request("POST", "/v1/indexes/small:install").
				WithBodyJson(map[string]interface{}{"name": "YES", "definition": "1"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			resp = api.Request("POST", "/v1/indexes/small:install").
				WithBodyJson(map[string]interface{}{"name": "NO", "definition": "0"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusInsufficientStorage)
			biff.AssertEqualJson(resp.BodyJson(), map[string]interface{}{
				"error": map[string]interface{}{
					"message":     "install 'NO': allocation error: no storage for a new entry",
					"description": "the index is full",
				},
			})

			resp = api.Request("POST", "/v1/indexes/small:install").
				WithBodyJson(map[string]interface{}{"name": "YES", "definition": "42"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})
	})
}

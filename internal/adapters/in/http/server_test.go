package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dronedelivery/internal/adapters/in/http"
	"dronedelivery/internal/adapters/in/http/openapi"
	"dronedelivery/internal/adapters/out/snapshot"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOrderJSON = `{
	"orderNo": "19514FE0",
	"orderDate": "2025-01-27",
	"priceTotalInPence": 2500,
	"pizzasInOrder": [
		{"name": "R1: Margarita", "priceInPence": 1000},
		{"name": "R1: Calzone", "priceInPence": 1400}
	],
	"creditCardInformation": {"creditCardNumber": "4000400040004000", "creditCardExpiry": "04/25", "cvv": "123"}
}`

// 2025-01-27 is a Monday.
func clock() time.Time { return time.Date(2025, time.January, 27, 12, 0, 0, 0, time.UTC) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pos(t *testing.T, lng, lat float64) kernel.Position {
	t.Helper()
	p, err := kernel.NewPosition(lng, lat)
	require.NoError(t, err)
	return p
}

func box(t *testing.T, name string, minLng, minLat, maxLng, maxLat float64) region.NamedRegion {
	t.Helper()
	poly, err := region.FromPairs([][2]float64{
		{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat},
	})
	require.NoError(t, err)
	return region.NamedRegion{Name: name, Polygon: poly}
}

type fixture struct {
	echo  *echo.Echo
	store *snapshot.Store
}

type options struct {
	dropOff kernel.Position
	zones   []region.NamedRegion
	load    snapshot.LoadFunc
	empty   bool
}

// newFixture serves one restaurant at the origin, open on Mondays. The
// default drop-off is two moves east of it.
func newFixture(t *testing.T, opts options) fixture {
	t.Helper()

	if opts.dropOff == (kernel.Position{}) {
		opts.dropOff = pos(t, 0.0003, 0)
	}
	if opts.load == nil {
		opts.load = func(context.Context) error { return errors.New("provider down") }
	}

	store := snapshot.NewStore()
	if !opts.empty {
		require.NoError(t, store.Replace(context.Background(), ports.RegionData{
			CentralArea: box(t, "central", -1, -1, 1, 1),
			NoFlyZones:  opts.zones,
			Restaurants: []order.Restaurant{{
				Name:        "Civerinos Slice",
				Location:    pos(t, 0, 0),
				OpeningDays: []time.Weekday{time.Monday},
				Menu: []order.Pizza{
					{Name: "R1: Margarita", PriceInPence: 1000},
					{Name: "R1: Calzone", PriceInPence: 1400},
				},
			}},
			Fingerprint: "test",
		}))
	}
	provider := snapshot.NewReadThrough(store, opts.load)

	cfg := services.DefaultSearchConfig()
	cfg.MaxExpansions = 500
	pf, err := services.NewPathfinder(cfg)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	validateHandler := queries.NewValidateOrderQueryHandler(provider, discardLogger()).WithClock(clock)
	pathHandler := queries.NewCalcDeliveryPathQueryHandler(
		provider, pf, nil, m, opts.dropOff, discardLogger(),
	).WithClock(clock)

	server := httpadapter.NewServer(validateHandler, pathHandler, cfg.Grid, "s0000001", discardLogger())
	doc, err := openapi.Load()
	require.NoError(t, err)
	e, err := httpadapter.NewRouter(server, doc, m.Handler(), discardLogger())
	require.NoError(t, err)

	return fixture{echo: e, store: store}
}

func (f fixture) do(t *testing.T, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_HealthAndUUID(t *testing.T) {
	f := newFixture(t, options{})

	health := f.do(t, http.MethodGet, "/health", "")
	uuid := f.do(t, http.MethodGet, "/uuid", "")

	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())
	assert.Equal(t, http.StatusOK, uuid.Code)
	assert.Equal(t, "s0000001", uuid.Body.String())
}

func TestServer_DistanceTo(t *testing.T) {
	f := newFixture(t, options{})

	t.Run("three_four_five", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/distanceTo",
			`{"position1":{"lng":0,"lat":0},"position2":{"lng":3,"lat":4}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.InDelta(t, 5.0, decode[float64](t, rec), 1e-12)
	})

	t.Run("missing_position_is_rejected_by_the_schema", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/distanceTo", `{"position1":{"lng":0,"lat":0}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decode[httpadapter.Error](t, rec).Code)
	})

	t.Run("out_of_range_longitude", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/distanceTo",
			`{"position1":{"lng":200,"lat":0},"position2":{"lng":0,"lat":0}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed_json", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/distanceTo", `{"position1":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_IsCloseTo(t *testing.T) {
	f := newFixture(t, options{})

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"within_threshold", `{"position1":{"lng":-3.186874,"lat":55.944494},"position2":{"lng":-3.18688,"lat":55.9445}}`, true},
		{"exactly_one_move", `{"position1":{"lng":0,"lat":0},"position2":{"lng":0.00015,"lat":0}}`, true},
		{"too_far", `{"position1":{"lng":0,"lat":0},"position2":{"lng":0.0002,"lat":0}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/isCloseTo", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decode[bool](t, rec))
		})
	}
}

func TestServer_NextPosition(t *testing.T) {
	f := newFixture(t, options{})

	t.Run("north", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/nextPosition", `{"start":{"lng":0,"lat":0},"angle":90}`)

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[httpadapter.LngLat](t, rec)
		assert.InDelta(t, 0, got.Lng, 1e-18)
		assert.InDelta(t, 0.00015, got.Lat, 1e-18)
	})

	t.Run("360_is_east", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/nextPosition", `{"start":{"lng":0,"lat":0},"angle":360}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, httpadapter.LngLat{Lng: 0.00015, Lat: 0}, decode[httpadapter.LngLat](t, rec))
	})

	t.Run("non_compass_angle", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/nextPosition", `{"start":{"lng":0,"lat":0},"angle":10}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpadapter.Error](t, rec).Message, "angle")
	})

	t.Run("hover_is_not_a_move", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/nextPosition", `{"start":{"lng":0,"lat":0},"angle":999}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_IsInRegion(t *testing.T) {
	f := newFixture(t, options{})
	square := `"region":{"name":"central","vertices":[{"lng":0,"lat":0},{"lng":1,"lat":0},{"lng":1,"lat":1},{"lng":0,"lat":1}]}`

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"inside", `{"position":{"lng":0.5,"lat":0.5},` + square + `}`, true},
		{"on_edge", `{"position":{"lng":1,"lat":0.5},` + square + `}`, true},
		{"outside", `{"position":{"lng":1.5,"lat":0.5},` + square + `}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/isInRegion", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decode[bool](t, rec))
		})
	}

	t.Run("two_vertices_are_rejected", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/isInRegion",
			`{"position":{"lng":0,"lat":0},"region":{"name":"line","vertices":[{"lng":0,"lat":0},{"lng":1,"lat":1}]}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ValidateOrder(t *testing.T) {
	t.Run("valid_order", func(t *testing.T) {
		f := newFixture(t, options{})

		rec := f.do(t, http.MethodPost, "/validateOrder", validOrderJSON)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, httpadapter.OrderValidationResult{
			OrderStatus:         "VALID",
			OrderValidationCode: "NO_ERROR",
		}, decode[httpadapter.OrderValidationResult](t, rec))
	})

	t.Run("invalid_order_answers_400_with_the_code", func(t *testing.T) {
		f := newFixture(t, options{})
		body := strings.Replace(validOrderJSON, `"cvv": "123"`, `"cvv": "12"`, 1)

		rec := f.do(t, http.MethodPost, "/validateOrder", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, httpadapter.OrderValidationResult{
			OrderStatus:         "INVALID",
			OrderValidationCode: "CVV_INVALID",
		}, decode[httpadapter.OrderValidationResult](t, rec))
	})

	t.Run("no_region_data_is_bad_gateway", func(t *testing.T) {
		f := newFixture(t, options{empty: true})

		rec := f.do(t, http.MethodPost, "/validateOrder", validOrderJSON)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestServer_CalcDeliveryPath(t *testing.T) {
	t.Run("path_from_restaurant_to_drop_off", func(t *testing.T) {
		// Given
		f := newFixture(t, options{})

		// When
		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON)

		// Then
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []httpadapter.LngLat{{Lng: 0, Lat: 0}, {Lng: 0.00015, Lat: 0}}, decode[[]httpadapter.LngLat](t, rec))
		_, err := kernel.UUIDFromString(rec.Header().Get(httpadapter.PlanIDHeader))
		assert.NoError(t, err)
	})

	t.Run("client_plan_id_is_kept", func(t *testing.T) {
		f := newFixture(t, options{})
		id := kernel.NewUUID().String()

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON, httpadapter.PlanIDHeader, id)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, rec.Header().Get(httpadapter.PlanIDHeader))
	})

	t.Run("invalid_order", func(t *testing.T) {
		f := newFixture(t, options{})
		body := strings.Replace(validOrderJSON, `"priceTotalInPence": 2500`, `"priceTotalInPence": 2400`, 1)

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "TOTAL_INCORRECT", decode[httpadapter.OrderValidationResult](t, rec).OrderValidationCode)
	})

	t.Run("unreachable_drop_off", func(t *testing.T) {
		f := newFixture(t, options{
			dropOff: pos(t, 0.001, 0),
			zones:   []region.NamedRegion{box(t, "zone", 0.0005, -0.0005, 0.0015, 0.0005)},
		})

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpadapter.Error](t, rec).Message, "no delivery path found")
	})

	t.Run("region_data_loaded_on_first_request", func(t *testing.T) {
		var f fixture
		f = newFixture(t, options{empty: true, load: func(ctx context.Context) error {
			return f.store.Replace(ctx, ports.RegionData{
				CentralArea: box(t, "central", -1, -1, 1, 1),
				Restaurants: []order.Restaurant{{
					Name:        "Civerinos Slice",
					Location:    pos(t, 0, 0),
					OpeningDays: []time.Weekday{time.Monday},
					Menu: []order.Pizza{
						{Name: "R1: Margarita", PriceInPence: 1000},
						{Name: "R1: Calzone", PriceInPence: 1400},
					},
				}},
			})
		}})

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("provider_down_is_bad_gateway", func(t *testing.T) {
		f := newFixture(t, options{empty: true})

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("order_without_pizzas_field_is_rejected_by_the_schema", func(t *testing.T) {
		f := newFixture(t, options{})

		rec := f.do(t, http.MethodPost, "/calcDeliveryPath", `{"orderNo":"1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CalcDeliveryPathAsGeoJSON(t *testing.T) {
	type feature struct {
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][2]float64  `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	type collection struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}

	t.Run("one_line_string", func(t *testing.T) {
		// Given
		f := newFixture(t, options{})

		// When
		rec := f.do(t, http.MethodPost, "/calcDeliveryPathAsGeoJson", validOrderJSON)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/geo+json", rec.Header().Get(echo.HeaderContentType))
		fc := decode[collection](t, rec)
		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 1)

		var line feature
		require.NoError(t, json.Unmarshal(fc.Features[0], &line))
		assert.Equal(t, "LineString", line.Geometry.Type)
		assert.Equal(t, [][2]float64{{0, 0}, {0.00015, 0}}, line.Geometry.Coordinates)
		assert.Equal(t, "DeliveryPath", line.Properties["type"])
	})

	t.Run("with_regions", func(t *testing.T) {
		f := newFixture(t, options{zones: []region.NamedRegion{box(t, "far", 0.5, 0.5, 0.6, 0.6)}})

		rec := f.do(t, http.MethodPost, "/calcDeliveryPathAsGeoJson?withRegions=true", validOrderJSON)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[collection](t, rec).Features, 3)
	})
}

func TestServer_MetricsAndSwagger(t *testing.T) {
	f := newFixture(t, options{})
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/calcDeliveryPath", validOrderJSON).Code)

	metricsRec := f.do(t, http.MethodGet, "/metrics", "")
	swaggerRec := f.do(t, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "dronedelivery_searches_total 1")
	require.Equal(t, http.StatusOK, swaggerRec.Code)
	assert.Contains(t, swaggerRec.Body.String(), "/calcDeliveryPathAsGeoJson")
}

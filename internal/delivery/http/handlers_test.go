package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/internal/metrics"
	"github.com/healthpremium/backend/internal/repository/postgres"
	"github.com/healthpremium/backend/internal/service"
)

type constModel float64

func (m constModel) Infer(context.Context, domain.FeatureVector) ([]float64, error) {
	return []float64{float64(m)}, nil
}

type failingModel struct{}

func (failingModel) Infer(context.Context, domain.FeatureVector) ([]float64, error) {
	return nil, domain.ErrSchemaMismatch
}

type identityScaler []string

func (s identityScaler) Columns() []string { return s }

func (s identityScaler) Transform(_ []string, row []float64) ([]float64, error) {
	return row, nil
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func newTestApp(t *testing.T, young, rest domain.Model, modelsHealth HealthChecker) (*fiber.App, *service.PremiumService) {
	t.Helper()

	scaler := identityScaler{domain.ColAge, domain.ColIncomeLakhs, "income_level"}
	params := domain.ScalingParams{ColumnsToScale: scaler, Scaler: scaler}
	predictor := service.NewPredictorFromArtifacts(young, rest, params, params)

	reg := prometheus.NewRegistry()
	svc := service.NewPremiumService(predictor, postgres.NewMemoryRepository(10), metrics.New(reg), nil)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, svc, modelsHealth, reg)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

const scenarioABody = `{
	"Age": 22, "Gender": "Male", "Region": "Southeast", "Medical History": "diabetes",
	"Insurance Plan": "Gold", "Income in Lakhs": 5, "Number of Dependants": 0, "Genetical Risk": 2
}`

func TestPredict_Young(t *testing.T) {
	app, _ := newTestApp(t, constModel(7100.8), constModel(19000), nil)

	status, body := doJSON(t, app, "POST", "/api/v1/predict", scenarioABody)

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, 7100.0, data["premium"])
	assert.Equal(t, "young", data["age_band"])
	assert.Equal(t, 0.4286, data["normalized_risk_score"])
	assert.NotEmpty(t, data["id"])
}

func TestPredict_Rest(t *testing.T) {
	app, _ := newTestApp(t, constModel(7100), constModel(19000), nil)

	status, body := doJSON(t, app, "POST", "/api/v1/predict", strings.Replace(scenarioABody, `"Age": 22`, `"Age": 40`, 1))

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, 19000.0, data["premium"])
	assert.Equal(t, "rest", data["age_band"])
}

func TestPredict_MissingAge(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	status, body := doJSON(t, app, "POST", "/api/v1/predict", `{"Gender": "Male"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "Age")
}

func TestPredict_NonFiniteAge(t *testing.T) {
	app, svc := newTestApp(t, constModel(1), constModel(2), nil)

	for _, age := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`} {
		body := strings.Replace(scenarioABody, `"Age": 22`, `"Age": `+age, 1)

		status, _ := doJSON(t, app, "POST", "/api/v1/predict", body)
		assert.Equal(t, fiber.StatusBadRequest, status, age)

		status, _ = doJSON(t, app, "POST", "/api/v1/features", body)
		assert.Equal(t, fiber.StatusBadRequest, status, age)
	}
	svc.WaitBackground()

	status, body := doJSON(t, app, "GET", "/api/v1/predictions", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["data"])
}

func TestPredict_UnusableModelOutput(t *testing.T) {
	app, _ := newTestApp(t, constModel(math.NaN()), constModel(math.Inf(1)), nil)

	status, _ := doJSON(t, app, "POST", "/api/v1/predict", scenarioABody)

	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestPredict_InvalidBody(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	for _, body := range []string{`{"Age":`, `null`, `[1, 2]`} {
		status, _ := doJSON(t, app, "POST", "/api/v1/predict", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
	}
}

func TestPredict_ModelFailure(t *testing.T) {
	app, _ := newTestApp(t, failingModel{}, failingModel{}, nil)

	status, body := doJSON(t, app, "POST", "/api/v1/predict", scenarioABody)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to get prediction", body["message"])
}

func TestFeatures(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	status, body := doJSON(t, app, "POST", "/api/v1/features", scenarioABody)

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	features := data["features"].(map[string]any)
	assert.Len(t, features, domain.NumFeatures)
	assert.NotContains(t, features, "income_level")
	assert.Equal(t, 3.0, features[domain.ColInsurancePlan])
	assert.Equal(t, 1.0, features[domain.ColGenderMale])
	assert.Len(t, data["columns"], domain.NumFeatures)
}

func TestListPredictions(t *testing.T) {
	app, svc := newTestApp(t, constModel(5000), constModel(9000), nil)

	doJSON(t, app, "POST", "/api/v1/predict", scenarioABody)
	svc.WaitBackground()
	doJSON(t, app, "POST", "/api/v1/predict", strings.Replace(scenarioABody, `"Age": 22`, `"Age": 50`, 1))
	svc.WaitBackground()

	status, body := doJSON(t, app, "GET", "/api/v1/predictions?limit=500", "")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2.0, body["count"])
	entries := body["data"].([]any)
	assert.Equal(t, 9000.0, entries[0].(map[string]any)["premium"])
}

func TestGetOptions(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	status, body := doJSON(t, app, "GET", "/api/v1/options", "")

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Contains(t, data["insurance_plans"], "Gold")
	assert.Contains(t, data["regions"], "Northeast")
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	status, body := doJSON(t, app, "GET", "/health", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthCheck_ModelServerDown(t *testing.T) {
	down := healthFunc(func(context.Context) error { return errors.New("connection refused") })
	app, _ := newTestApp(t, constModel(1), constModel(2), down)

	status, body := doJSON(t, app, "GET", "/health", "")

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)
	doJSON(t, app, "POST", "/api/v1/predict", scenarioABody)

	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `premium_predictions_total{age_band="young",outcome="success"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, constModel(1), constModel(2), nil)

	status, body := doJSON(t, app, "GET", "/api/v1/nope", "")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, true, body["error"])
}

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuiz(t *testing.T) {
	before := testutil.ToFloat64(QuizSubmissions.WithLabelValues("true"))

	ObserveQuiz(90, true)
	ObserveQuiz(40, false)

	assert.Equal(t, before+1, testutil.ToFloat64(QuizSubmissions.WithLabelValues("true")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(QuizSubmissions.WithLabelValues("false")), 1.0)
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", PrometheusHandler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{endpoint="/ping",method="GET",status="200"}`)
}

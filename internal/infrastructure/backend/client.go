package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nuclralert-dashboard/internal/config"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"github.com/nuclralert-dashboard/internal/observability"
	"github.com/nuclralert-dashboard/internal/pkg/validator"
	"go.uber.org/zap"
)

const (
	endpointLoadData = "load_data"
	endpointGetData  = "get_data"
	endpointHealth   = "health"

	// максимальный размер тела ошибки, который читаем для сообщения
	maxErrorBody = 4 << 10
)

type client struct {
	httpClient *http.Client
	baseURL    string
	loadMethod string
	mapPath    string
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient создает клиент бэкенда NuclrAlert
func NewClient(cfg *config.BackendConfig, metrics *observability.Metrics, logger *zap.Logger) repository.BackendRepository {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, metrics, logger)
}

// NewClientWithHTTP - то же, но с готовым http.Client (для тестов и кастомного транспорта)
func NewClientWithHTTP(cfg *config.BackendConfig, httpClient *http.Client, metrics *observability.Metrics, logger *zap.Logger) repository.BackendRepository {
	method := strings.ToUpper(cfg.LoadMethod)
	if method != http.MethodPost {
		method = http.MethodGet
	}
	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loadMethod: method,
		mapPath:    "/" + strings.Trim(cfg.MapPath, "/"),
		metrics:    metrics,
		logger:     logger,
	}
}

// LoadData просит бэкенд загрузить и обработать датасет
func (c *client) LoadData(ctx context.Context) (*domain.LoadSummary, error) {
	resp, err := c.do(ctx, c.loadMethod, endpointLoadData)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(endpointLoadData, resp)
	}

	// Тело ответа необязательно: успехом считается любой 2xx
	summary := &domain.LoadSummary{Success: true}
	if err := json.NewDecoder(resp.Body).Decode(summary); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Debug("Ignoring undecodable load_data body", zap.Error(err))
		summary = &domain.LoadSummary{Success: true}
	}

	c.observe(endpointLoadData, "success")
	c.logger.Info("Backend data loaded",
		zap.Int("total_plants", summary.TotalPlants),
		zap.String("map_filename", summary.MapFilename))

	return summary, nil
}

// GetData возвращает обработанный снапшот. 404 ("No data available") - пустой снапшот.
func (c *client) GetData(ctx context.Context) (*domain.DashboardSnapshot, error) {
	resp, err := c.do(ctx, http.MethodGet, endpointGetData)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.observe(endpointGetData, "not_found")
		c.logger.Debug("Backend has no processed data yet")
		return &domain.DashboardSnapshot{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(endpointGetData, resp)
	}

	var snapshot domain.DashboardSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		c.observe(endpointGetData, "server_error")
		c.logger.Error("Failed to decode get_data payload", zap.Error(err))
		return nil, domain.NewMalformedError(endpointGetData, err)
	}
	if err := validator.Validate(&snapshot); err != nil {
		c.observe(endpointGetData, "server_error")
		c.logger.Error("Invalid get_data payload", zap.Error(err))
		return nil, domain.NewMalformedError(endpointGetData, err)
	}

	if unknown := snapshot.UnknownSafetyCount(); unknown > 0 {
		c.logger.Warn("Backend returned unrecognized Safety values",
			zap.Int("records", unknown))
		if c.metrics != nil {
			c.metrics.UnrecognizedSafety.Add(float64(unknown))
		}
	}

	c.observe(endpointGetData, "success")
	c.logger.Debug("Backend snapshot fetched",
		zap.Int("plants", len(snapshot.Plants)),
		zap.Int("distances", len(snapshot.Distances)))

	return &snapshot, nil
}

// MapURL строит адрес файла карты на бэкенде
func (c *client) MapURL(filename string) string {
	if filename == "" {
		return ""
	}
	return c.baseURL + c.mapPath + "/" + url.PathEscape(filename)
}

func (c *client) DownloadURL() string {
	return c.baseURL + "/download_processed"
}

// CheckHealth считает бэкенд доступным при любом HTTP ответе
func (c *client) CheckHealth(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, endpointHealth)
	if err != nil {
		return err
	}
	resp.Body.Close()
	c.observe(endpointHealth, "success")
	return nil
}

func (c *client) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	target := c.baseURL + "/"
	if endpoint != endpointHealth {
		target += endpoint
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, domain.NewNetworkError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Calling NuclrAlert backend",
		zap.String("method", method),
		zap.String("url", target))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.BackendDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.observe(endpoint, "network_error")
		c.logger.Error("Backend request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, domain.NewNetworkError(endpoint, err)
	}
	return resp, nil
}

// statusError собирает ServerError, вытаскивая поле "error" из тела, если оно есть
func (c *client) statusError(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Error
	}

	c.observe(endpoint, "server_error")
	c.logger.Error("Backend returned error",
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.String("body", string(body)))

	return domain.NewStatusError(endpoint, resp.StatusCode, detail)
}

func (c *client) observe(endpoint, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.BackendRequests.WithLabelValues(endpoint, outcome).Inc()
}

package vehicleservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент реестра транспорта
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента реестра транспорта
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVehicle получает транспорт по ID
func (c *Client) GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/vehicles/%s", c.baseURL, vehicleID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrVehicleNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var vehicle Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &vehicle, nil
}

// GetVehicleWithGracefulDegradation получает транспорт с graceful degradation.
// При недоступности реестра возвращает ErrServiceDegraded: бронирование
// может быть создано без отображаемого номера.
func (c *Client) GetVehicleWithGracefulDegradation(ctx context.Context, vehicleID string) (*Vehicle, error) {
	vehicle, err := c.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			c.log.Info("No vehicle found for vehicle_id=%s", vehicleID)
			return nil, err
		}

		c.log.Error("VehicleService unavailable, applying graceful degradation for vehicle_id=%s: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: vehicle_id=%s, error=%v", ErrServiceDegraded, vehicleID, err)
	}
	return vehicle, nil
}

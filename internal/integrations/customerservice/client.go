package customerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CustomerService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CustomerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSelectedVehicle получает выбранный автомобиль клиента
func (c *Client) GetSelectedVehicle(ctx context.Context, userID int64) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/customers/%d/vehicles/selected", c.baseURL, userID)

	var vehicle Vehicle
	if err := c.getJSON(ctx, url, &vehicle, ErrVehicleNotFound); err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// GetProfile получает профиль клиента
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/customers/%d/profile", c.baseURL, userID)

	var profile Profile
	if err := c.getJSON(ctx, url, &profile, ErrProfileNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetSelectedVehicleWithGracefulDegradation получает автомобиль клиента с graceful degradation
// При недоступности CustomerService возвращает ErrServiceDegraded, что позволяет
// создать заявку без данных автомобиля
func (c *Client) GetSelectedVehicleWithGracefulDegradation(ctx context.Context, userID int64) (*Vehicle, error) {
	c.log.Info("Fetching selected vehicle for user_id=%d", userID)

	vehicle, err := c.GetSelectedVehicle(ctx, userID)
	if err != nil {
		// Отсутствие выбранного автомобиля - бизнес-факт, пробрасываем дальше
		if err == ErrVehicleNotFound {
			c.log.Info("No selected vehicle found for user_id=%d", userID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("CustomerService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched vehicle for user_id=%d, registration=%s", userID, vehicle.Registration)
	return vehicle, nil
}

// getJSON выполняет GET запрос и декодирует ответ в target
func (c *Client) getJSON(ctx context.Context, url string, target interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

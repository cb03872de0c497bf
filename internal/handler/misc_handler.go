package handler

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const quoteAPIURL = "https://api.quotable.io/random"

// MiscHandler bundles the miscellaneous demo endpoints.
type MiscHandler struct {
	httpClient *http.Client
}

// NewMiscHandler creates a new misc handler.
func NewMiscHandler() *MiscHandler {
	return &MiscHandler{
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Health godoc
// @Summary Health check
// @Tags misc
// @Produce json
// @Success 200 {object} map[string]string
// @Router /misc/health [get]
func (h *MiscHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// Ping godoc
// @Summary Ping
// @Tags misc
// @Produce json
// @Success 200 {object} map[string]string
// @Router /misc/ping [get]
func (h *MiscHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "pong"})
}

// Time godoc
// @Summary Get server time
// @Tags misc
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /misc/time [get]
func (h *MiscHandler) Time(c echo.Context) error {
	now := time.Now().UTC()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"utc":            now.Format(time.RFC3339Nano),
		"unix_timestamp": now.Unix(),
		"formatted":      now.Format("2006-01-02 15:04:05 UTC"),
		"timezone":       "UTC",
	})
}

// EchoGet godoc
// @Summary Echo a query message
// @Tags misc
// @Produce json
// @Param message query string true "Message to echo back"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /misc/echo [get]
func (h *MiscHandler) EchoGet(c echo.Context) error {
	message := c.QueryParam("message")
	if message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter message is required")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"original_message": message,
		"echoed_at":        time.Now().UTC().Format(time.RFC3339),
		"length":           len(message),
	})
}

// EchoPost godoc
// @Summary Echo a JSON body
// @Tags misc
// @Accept json
// @Produce json
// @Param data body map[string]interface{} true "Data to echo back"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /misc/echo [post]
func (h *MiscHandler) EchoPost(c echo.Context) error {
	var data map[string]interface{}
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("received data: %v", data),
		"success": true,
	})
}

// quoteResponse is the subset of the quotable.io payload we use.
type quoteResponse struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// RandomQuote godoc
// @Summary Get a random quote
// @Tags misc
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /misc/random-quote [get]
func (h *MiscHandler) RandomQuote(c echo.Context) error {
	quote, err := h.fetchQuote(c)
	if err != nil {
		c.Logger().Warnf("quote API unavailable: %v", err)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"quote":  "The only way to do great work is to love what you do.",
			"author": "Steve Jobs",
			"tags":   []string{"motivational"},
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"quote":  quote.Content,
		"author": quote.Author,
		"tags":   quote.Tags,
	})
}

func (h *MiscHandler) fetchQuote(c echo.Context) (*quoteResponse, error) {
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, quoteAPIURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Weather godoc
// @Summary Get mock weather data
// @Tags misc
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /misc/weather [get]
func (h *MiscHandler) Weather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter city is required")
	}

	conditions := []string{"sunny", "cloudy", "rainy", "partly cloudy", "clear"}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"city":        city,
		"temperature": float64(int((rand.Float64()*45-10)*10)) / 10,
		"condition":   conditions[rand.Intn(len(conditions))],
		"humidity":    30 + rand.Intn(61),
		"wind_speed":  float64(int(rand.Float64()*250)) / 10,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"note":        "This is mock data for demo purposes",
	})
}

// Slow godoc
// @Summary Simulate a slow operation
// @Tags misc
// @Produce json
// @Param delay query int false "Delay in seconds (1-30)" default(5)
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /misc/slow [get]
func (h *MiscHandler) Slow(c echo.Context) error {
	delay := 5
	if v := c.QueryParam("delay"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 30 {
			return echo.NewHTTPError(http.StatusBadRequest, "delay must be between 1 and 30 seconds")
		}
		delay = parsed
	}

	timer := time.NewTimer(time.Duration(delay) * time.Second)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":      fmt.Sprintf("waited for %d seconds", delay),
		"completed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorTrigger godoc
// @Summary Trigger an HTTP error
// @Tags misc
// @Produce json
// @Param status_code query int false "Status code (400-599)" default(500)
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /misc/error [get]
func (h *MiscHandler) ErrorTrigger(c echo.Context) error {
	statusCode := http.StatusInternalServerError
	if v := c.QueryParam("status_code"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 400 || parsed > 599 {
			return echo.NewHTTPError(http.StatusBadRequest, "status_code must be between 400 and 599")
		}
		statusCode = parsed
	}

	message := http.StatusText(statusCode)
	if message == "" {
		message = "HTTP Error"
	}
	return echo.NewHTTPError(statusCode, message)
}

package usage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/quickwritereader/structjson"
	"github.com/quickwritereader/structjson/access"
)

const ForecastBase = "https://api.open-meteo.com/v1/forecast"

// WeatherData is the open-meteo "hourly" member: parallel sequences, one
// entry per hour.
type WeatherData struct {
	Time               []string  `json:"time"`
	Temperature2m      []float32 `json:"temperature_2m"`
	RelativeHumidity2m []float32 `json:"relative_humidity_2m"`
	WindDirection10m   []float32 `json:"winddirection_10m"`
	Precipitation      []float32 `json:"precipitation"`
	WindSpeed10m       []float32 `json:"windspeed_10m"`
}

// ForecastURL builds the hourly forecast request for a coordinate.
func ForecastURL(base, lat, lon string) string {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("hourly", "temperature_2m,relative_humidity_2m,winddirection_10m,precipitation,windspeed_10m")
	return base + "?" + q.Encode()
}

// FetchWeather downloads a forecast and decodes its hourly member with opts.
func FetchWeather(ctx context.Context, client *http.Client, rawURL string, opts structjson.Options) (WeatherData, error) {
	var wd WeatherData
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return wd, fmt.Errorf("FetchWeather: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return wd, fmt.Errorf("FetchWeather: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return wd, fmt.Errorf("FetchWeather: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wd, fmt.Errorf("FetchWeather: %w", err)
	}
	return DecodeHourly(body, opts)
}

// DecodeHourly decodes the hourly member of a forecast document.
func DecodeHourly(doc []byte, opts structjson.Options) (WeatherData, error) {
	c, err := structjson.New[WeatherData](opts)
	if err != nil {
		return WeatherData{}, fmt.Errorf("DecodeHourly: %w", err)
	}
	root, err := access.Parse(doc)
	if err != nil {
		return WeatherData{}, fmt.Errorf("DecodeHourly: %w", err)
	}
	hourly, err := root.Get("hourly")
	if err != nil {
		return WeatherData{}, fmt.Errorf("DecodeHourly: hourly: %w", err)
	}
	wd, err := c.DecodeValue(hourly)
	if err != nil {
		return wd, fmt.Errorf("DecodeHourly: %w", err)
	}
	return wd, nil
}

// Hours returns the number of complete rows, the shortest sequence length.
func (wd WeatherData) Hours() int {
	n := len(wd.Time)
	for _, s := range [][]float32{wd.Temperature2m, wd.RelativeHumidity2m, wd.WindDirection10m, wd.Precipitation, wd.WindSpeed10m} {
		n = min(n, len(s))
	}
	return n
}

// Line formats hour i for display.
func (wd WeatherData) Line(i int) string {
	return fmt.Sprintf("Time: %s, Temperature: %.1f°C, Humidity: %.1f%%, Wind Direction: %.1f°, Precipitation: %.1fmm, Wind Speed: %.1fkm/h",
		wd.Time[i], wd.Temperature2m[i], wd.RelativeHumidity2m[i], wd.WindDirection10m[i], wd.Precipitation[i], wd.WindSpeed10m[i])
}

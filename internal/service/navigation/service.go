package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

const geolocationURL = "http://ip-api.com/json/"

// Config holds the endpoints of the public routing services.
type Config struct {
	NominatimURL string
	OSRMURL      string
	UserAgent    string
	Timeout      time.Duration
}

// Service resolves the user's position and computes walking routes
// against Nominatim and OSRM.
type Service struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

func NewService(cfg Config, log *zap.Logger) ports.NavigationService {
	if cfg.NominatimURL == "" {
		cfg.NominatimURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.OSRMURL == "" {
		cfg.OSRMURL = "https://router.project-osrm.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// CurrentLocation approximates the user's position from their public IP.
func (s *Service) CurrentLocation(ctx context.Context) (*domain.Location, error) {
	var payload struct {
		Status  string  `json:"status"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		City    string  `json:"city"`
		Country string  `json:"country"`
	}
	if err := s.getJSON(ctx, geolocationURL, &payload); err != nil {
		return nil, fmt.Errorf("geolocate: %w", err)
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("geolocate: lookup failed")
	}
	return &domain.Location{
		Latitude:  payload.Lat,
		Longitude: payload.Lon,
		City:      payload.City,
		Country:   payload.Country,
	}, nil
}

// Directions geocodes the spoken destination near the origin and
// returns a simplified walking route.
func (s *Service) Directions(ctx context.Context, origin *domain.Location, destination string) (*domain.Route, error) {
	target, err := s.geocode(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	route, err := s.walkingRoute(ctx, origin, target)
	if err != nil {
		return nil, err
	}
	route.Destination = target.Address
	return route, nil
}

func (s *Service) geocode(ctx context.Context, near *domain.Location, query string) (*domain.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if near != nil {
		// Bias results toward a box around the user's position.
		params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
			near.Longitude-0.05, near.Latitude+0.05,
			near.Longitude+0.05, near.Latitude-0.05))
		params.Set("bounded", "0")
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	endpoint := s.cfg.NominatimURL + "/search?" + params.Encode()
	if err := s.getJSON(ctx, endpoint, &results); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocode %q: no results", query)
	}

	var lat, lon float64
	if _, err := fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("geocode %q: bad latitude %q", query, results[0].Lat)
	}
	if _, err := fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("geocode %q: bad longitude %q", query, results[0].Lon)
	}
	return &domain.Location{Latitude: lat, Longitude: lon, Address: results[0].DisplayName}, nil
}

func (s *Service) walkingRoute(ctx context.Context, from, to *domain.Location) (*domain.Route, error) {
	endpoint := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=false&steps=true",
		s.cfg.OSRMURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	var payload struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Legs     []struct {
				Steps []struct {
					Distance float64 `json:"distance"`
					Name     string  `json:"name"`
					Maneuver struct {
						Type     string `json:"type"`
						Modifier string `json:"modifier"`
					} `json:"maneuver"`
				} `json:"steps"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, fmt.Errorf("route: no route found")
	}

	raw := payload.Routes[0]
	route := &domain.Route{DistanceM: raw.Distance, DurationS: raw.Duration}
	for _, leg := range raw.Legs {
		for _, step := range leg.Steps {
			route.Steps = append(route.Steps, domain.RouteStep{
				Instruction: spokenInstruction(step.Maneuver.Type, step.Maneuver.Modifier, step.Name),
				DistanceM:   step.Distance,
			})
		}
	}
	return route, nil
}

// spokenInstruction turns an OSRM maneuver into a short sentence
// suitable for text to speech.
func spokenInstruction(maneuver, modifier, street string) string {
	var phrase string
	switch maneuver {
	case "depart":
		phrase = "Start walking"
	case "arrive":
		return "You have arrived at your destination"
	case "turn", "end of road", "fork":
		if modifier != "" {
			phrase = "Turn " + modifier
		} else {
			phrase = "Turn"
		}
	case "continue", "new name":
		phrase = "Continue straight"
	case "roundabout":
		phrase = "Enter the roundabout"
	default:
		phrase = "Continue"
	}
	if street != "" {
		phrase += " on " + street
	}
	return phrase
}

func (s *Service) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

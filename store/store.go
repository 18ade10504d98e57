package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"busbilet-cli/model"
)

const (
	appDir          = "busbilet-cli"
	stationCacheTTL = 24 * time.Hour
	maxRecentRoutes = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentRoute is a previously searched origin/destination pair.
type RecentRoute struct {
	FromID   int    `json:"from_id"`
	ToID     int    `json:"to_id"`
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
}

type routeHistory struct {
	Routes []RecentRoute `json:"routes"`
}

// LoadStationCache returns the cached station list and whether it is still fresh.
func LoadStationCache() ([]model.Station, bool, error) {
	path, err := cachePath("stations.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Station](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= stationCacheTTL, nil
}

func SaveStationCache(stations []model.Station) error {
	path, err := cachePath("stations.json")
	if err != nil {
		return err
	}
	return saveCache(path, stations)
}

func LoadRecentRoutes() ([]RecentRoute, error) {
	path, err := configPath("routes.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history routeHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid route history format")
	}
	return history.Routes, nil
}

// RememberRoute moves route to the front of the history, dropping duplicates.
func RememberRoute(route RecentRoute) error {
	if route.FromID <= 0 || route.ToID <= 0 {
		return errors.New("route station ids are required")
	}
	history, _ := LoadRecentRoutes()
	next := []RecentRoute{route}

	for _, existing := range history {
		if existing.FromID == route.FromID && existing.ToID == route.ToID {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentRoutes {
			break
		}
	}

	return saveRecentRoutes(next)
}

// LastRoute returns the most recent route, if any.
func LastRoute() (RecentRoute, bool) {
	routes, err := LoadRecentRoutes()
	if err != nil || len(routes) == 0 {
		return RecentRoute{}, false
	}
	return routes[0], true
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	return writeJSON(path, cache)
}

func saveRecentRoutes(routes []RecentRoute) error {
	path, err := configPath("routes.json")
	if err != nil {
		return err
	}
	return writeJSON(path, routeHistory{Routes: routes})
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

// CacheDir is where cached data and the default log file live.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

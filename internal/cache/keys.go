package cache

import (
	"net/url"
	"strconv"
	"strings"
)

// Endpoint kinds, used as key prefixes so keys never collide across endpoints.
const (
	KindTrains          = "trains"
	KindRoutes          = "routes"
	KindAnalytics       = "analytics"
	KindAlerts          = "alerts"
	KindRecommendations = "recommendations"
)

// TrainsKey keys a page of the trains listing.
func TrainsKey(hub string, page, pageSize int) string {
	return join(KindTrains, normalizeHub(hub), strconv.Itoa(page), strconv.Itoa(pageSize))
}

// RoutesKey keys the route options of one train seen from a hub.
func RoutesKey(trainID, hub string) string {
	return join(KindRoutes, strings.TrimSpace(trainID), normalizeHub(hub))
}

// AnalyticsKey keys the analytics of a hub.
func AnalyticsKey(hub string) string {
	return join(KindAnalytics, normalizeHub(hub))
}

// AlertsKey keys a page of the alerts listing.
func AlertsKey(hub string, page, pageSize int) string {
	return join(KindAlerts, normalizeHub(hub), strconv.Itoa(page), strconv.Itoa(pageSize))
}

// RecommendationsKey keys the network-wide recommendations.
func RecommendationsKey() string {
	return KindRecommendations + ":"
}

// KindOf returns the endpoint kind a key belongs to.
func KindOf(key string) string {
	kind, _, _ := strings.Cut(key, ":")
	return kind
}

func normalizeHub(hub string) string {
	return strings.TrimSpace(hub)
}

// join escapes every part so a ':' inside a hub or train id cannot shift the boundaries.
func join(kind string, parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, kind)
	for _, p := range parts {
		escaped = append(escaped, url.QueryEscape(p))
	}
	return strings.Join(escaped, ":")
}

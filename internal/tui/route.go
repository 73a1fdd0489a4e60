package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// RouteKind is one of the addressable views
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteFavorites
	RouteMovie
)

// Route is a parsed navigation target
type Route struct {
	Kind    RouteKind
	MovieID int64 // set for RouteMovie
}

// HomeRoute, FavoritesRoute and MovieRoute build routes
func HomeRoute() Route      { return Route{Kind: RouteHome} }
func FavoritesRoute() Route { return Route{Kind: RouteFavorites} }
func MovieRoute(id int64) Route {
	return Route{Kind: RouteMovie, MovieID: id}
}

// Path renders the route as "/", "/favorites" or "/movie/<id>"
func (r Route) Path() string {
	switch r.Kind {
	case RouteFavorites:
		return "/favorites"
	case RouteMovie:
		return fmt.Sprintf("/movie/%d", r.MovieID)
	default:
		return "/"
	}
}

// ParseRoute parses a path produced by Route.Path
func ParseRoute(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}

	switch {
	case p == "" || p == "/":
		return HomeRoute(), nil
	case p == "/favorites":
		return FavoritesRoute(), nil
	case strings.HasPrefix(p, "/movie/"):
		idStr := strings.TrimPrefix(p, "/movie/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("invalid movie id %q", idStr)
		}
		return MovieRoute(id), nil
	default:
		return Route{}, fmt.Errorf("unknown route %q", path)
	}
}

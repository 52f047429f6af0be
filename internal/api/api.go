// Package api implements the HTTP handlers of the auction marketplace.
package api

import "github.com/artauction/auctionapi/internal/webserver"

// Register mounts every route on the server.
func Register(s *webserver.WebServer) {
	registerAuthRoutes(s)
	registerHealthRoutes(s)
	registerArtistRoutes(s)
	registerCategoryRoutes(s)
	registerEventRoutes(s)
	registerProductRoutes(s)
	registerReviewRoutes(s)
	registerOrderRoutes(s)
}

package endpoints

import (
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterDocsEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterCategoriesEndpoints(srv)
	RegisterSubscriptionsEndpoints(srv)
	RegisterAnalyticsEndpoints(srv)
	RegisterRemindersEndpoints(srv)
}

package router

import "github.com/gin-gonic/gin"

// Module is one slice of the API surface (auth, catalog, reviews, users).
// Each module mounts its own routes and middleware chains on the versioned
// group the registry hands it.
type Module interface {
	Register(rg *gin.RouterGroup)
}

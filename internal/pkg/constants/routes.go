package constants

// Static route constants
const (
	PublicRoute      = "/"
	PhotosRoute      = "/photos"
	CollectionsRoute = "/collections"
)

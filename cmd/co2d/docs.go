package main

// General API information for swaggo. The served Swagger document is
// maintained by hand in internal/httpapi/swagger.go (build with
// -tags=swagger) and repeats this info block; handlers carry no swag
// annotations, so `swag init` is not part of the build.
//
// @title           co2d API
// @version         1.0
// @description     Vehicle CO2 emissions prediction from seven vehicle attributes.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

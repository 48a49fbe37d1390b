package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           textgend API
// @version         1.0
// @description     HTTP API for on-device text generation with offline fallback.
//
// @contact.name   textgend maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

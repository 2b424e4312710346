// Package docs registers the swagger spec gin-swagger serves at
// /swagger/*any. Hand-authored in the shape `swag init` would generate,
// since the generator itself isn't part of this module's build.
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/image/embed": {"post": {"tags": ["image"], "summary": "Embed a message or file into an image"}},
        "/image/extract": {"post": {"tags": ["image"], "summary": "Extract a previously embedded message or file from an image"}},
        "/jpeg/embed": {"post": {"tags": ["jpeg"], "summary": "Embed a message or file into a JPEG's DCT coefficients"}},
        "/jpeg/extract": {"post": {"tags": ["jpeg"], "summary": "Extract a previously embedded message or file from a JPEG's DCT coefficients"}},
        "/text/embed": {"post": {"tags": ["text"], "summary": "Embed a message into cover text using zero-width characters"}},
        "/text/extract": {"post": {"tags": ["text"], "summary": "Extract a previously embedded message from stega text"}},
        "/text/detect": {"get": {"tags": ["text"], "summary": "Check whether text carries a hidden zero-width payload"}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "nstego API",
	Description:      "An API to perform pixel, JPEG DCT, and zero-width-character steganography",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

package restmachinery

import (
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

// InboundRequest models an inbound REST API request and how to handle it.
type InboundRequest struct {
	W                   http.ResponseWriter
	R                   *http.Request
	ReqBodySchemaLoader gojsonschema.JSONLoader
	ReqBodyObj          interface{}
	EndpointLogic       func() (interface{}, error)
	SuccessCode         int
}

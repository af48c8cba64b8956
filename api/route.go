package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Navigator records route changes in the application store.
type Navigator interface {
	Navigate(url string, params map[string]string)
}

type RouteHandler struct {
	navigator Navigator
}

func NewRouteHandler(navigator Navigator) *RouteHandler {
	return &RouteHandler{navigator: navigator}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.PUT("/flights/:id", h.flight)
}

// flight selects the active flight. The id is passed through unchecked; an
// id that names no loaded flight leaves the active flight empty.
func (h *RouteHandler) flight(c *gin.Context) {
	id := c.Param("id")
	h.navigator.Navigate("/flights/"+id, map[string]string{"id": id})
	c.Status(http.StatusAccepted)
}

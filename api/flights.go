package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var ErrFlightNotFound = errors.New("flight not found")

// BookingFacade is the part of the booking feature the HTTP layer uses.
type BookingFacade interface {
	Flights() store.Stream[[]domain.Flight]
	CurrentFlights() []domain.Flight
	CurrentActiveFlight() (domain.Flight, bool)
	ActiveUserFlights() []domain.Flight
	Search(from, to string)
	Save(flight domain.Flight)
}

type FlightHandler struct {
	facade BookingFacade
	logger logrus.FieldLogger
}

func NewFlightHandler(facade BookingFacade, logger logrus.FieldLogger) *FlightHandler {
	return &FlightHandler{facade: facade, logger: logger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/mine", h.mine)
	router.GET("/active", h.active)
	router.GET("/stream", h.stream)
	router.POST("/search", h.search)
	router.POST("/save", h.save)
}

type searchRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *FlightHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.CurrentFlights())
}

func (h *FlightHandler) mine(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.ActiveUserFlights())
}

func (h *FlightHandler) active(c *gin.Context) {
	flight, ok := h.facade.CurrentActiveFlight()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrFlightNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

// search starts a load. Results arrive on /flights and /flights/stream.
func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.facade.Search(req.From, req.To)
	c.Status(http.StatusAccepted)
}

func (h *FlightHandler) save(c *gin.Context) {
	var flight domain.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.facade.Save(flight)
	c.Status(http.StatusAccepted)
}

// stream sends the flight list as server-sent events, the current list first.
// A slow client only ever sees the most recent list.
func (h *FlightHandler) stream(c *gin.Context) {
	updates := make(chan []domain.Flight, 1)
	unsubscribe := h.facade.Flights().Subscribe(func(fs []domain.Flight) {
		select {
		case updates <- fs:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- fs
		}
	})
	defer unsubscribe()

	h.logger.WithField("client", c.ClientIP()).Debug("flights stream opened")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case fs := <-updates:
			c.SSEvent("flights", fs)
			return true
		}
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/Jcgmtxt/aquashield/internal/apierror"
	"github.com/Jcgmtxt/aquashield/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AdminHandler exposes operational endpoints: dead-letter queue inspection
// and requeue. Administrador role only.
type AdminHandler struct{ rdb *redis.Client }

func NewAdminHandler(rdb *redis.Client) *AdminHandler { return &AdminHandler{rdb: rdb} }

var dlqQueues = map[string]string{
	"comprobante": worker.QueueComprobante,
	"email":       worker.QueueEmail,
}

func (h *AdminHandler) DLQStatus(c *gin.Context) {
	status := make(map[string]int64, len(dlqQueues))
	for name, queue := range dlqQueues {
		n, err := worker.DLQLength(c.Request.Context(), h.rdb, queue)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la DLQ"))
			return
		}
		status[name] = n
	}
	c.JSON(http.StatusOK, status)
}

func (h *AdminHandler) RequeueDLQ(c *gin.Context) {
	queue, ok := dlqQueues[c.Param("queue")]
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Cola desconocida"))
		return
	}

	batch := 50
	if raw := c.Query("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("batch inválido"))
			return
		}
		batch = n
	}

	moved, err := worker.RequeueDLQ(c.Request.Context(), h.rdb, queue, batch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al reencolar"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"requeued": moved})
}

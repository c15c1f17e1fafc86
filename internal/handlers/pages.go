package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imbecis/app-imbecis/internal/services"
	"go.uber.org/zap"
)

// GetFeed godoc
// @Summary Feed público de denúncias
// @Description Devolve uma página do feed. O filtro de município só é aplicado a municípios conhecidos.
// @Tags reports
// @Produce json
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Param municipio query string false "Município"
// @Success 200 {object} services.FeedPage
// @Failure 400 {object} ErrorResponse "Página inválida"
// @Router /feed [get]
func (h *Handlers) GetFeed(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Página inválida"})
		return
	}

	c.JSON(http.StatusOK, h.pages.Feed(c.Request.Context(), page, c.Query("municipio")))
}

// GetMap godoc
// @Summary Mapa de calor
// @Tags reports
// @Produce json
// @Success 200 {object} services.MapPage
// @Router /mapa [get]
func (h *Handlers) GetMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Map(c.Request.Context()))
}

// GetPlates godoc
// @Summary Tabela de matrículas confirmadas
// @Tags plates
// @Produce json
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Success 200 {object} models.PaginatedPlatesList
// @Failure 400 {object} ErrorResponse "Página inválida"
// @Router /matriculas [get]
func (h *Handlers) GetPlates(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Página inválida"})
		return
	}

	c.JSON(http.StatusOK, h.pages.Plates(c.Request.Context(), page))
}

// GetPlate godoc
// @Summary Matrícula e respetivas denúncias
// @Tags plates
// @Produce json
// @Param country path string true "País"
// @Param plate path string true "Matrícula"
// @Success 200 {object} services.PlatePage
// @Router /matriculas/{country}/{plate} [get]
func (h *Handlers) GetPlate(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Plate(c.Request.Context(), c.Param("country"), c.Param("plate")))
}

// GetReport godoc
// @Summary Obter denúncia
// @Tags reports
// @Produce json
// @Param id path string true "ID da denúncia"
// @Success 200 {object} models.ReportResult
// @Failure 404 {object} models.ReportResult
// @Router /reports/{id} [get]
func (h *Handlers) GetReport(c *gin.Context) {
	result := h.pages.Report(c.Request.Context(), c.Param("id"))
	if !result.Success {
		c.JSON(http.StatusNotFound, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAdminReports godoc
// @Summary Lista de denúncias para administração
// @Tags reports
// @Produce json
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Param status query string false "Estado"
// @Param municipality query string false "Município"
// @Param sortOrder query string false "ordenação (padrão: desc)"
// @Success 200 {object} services.AdminReportsPage
// @Failure 400 {object} ErrorResponse "Parâmetros inválidos"
// @Router /reports [get]
func (h *Handlers) GetAdminReports(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Página inválida"})
		return
	}

	filters := services.ReportFilters{
		Status:       c.Query("status"),
		Municipality: c.Query("municipality"),
		SortOrder:    c.Query("sortOrder"),
	}
	c.JSON(http.StatusOK, h.pages.AdminReports(c.Request.Context(), filters, page))
}

// GetReview godoc
// @Summary Próxima denúncia para votação
// @Description Devolve a próxima denúncia por rever. O token anti-falsificação emitido pelo backend segue no cabeçalho csrf-token.
// @Tags reports
// @Produce json
// @Success 200 {object} services.ReviewPage
// @Header 200 {string} csrf-token "Token para o voto seguinte"
// @Router /votar [get]
func (h *Handlers) GetReview(c *gin.Context) {
	session := services.NewSession()
	page := h.newLoader(session).Review(c.Request.Context())

	if token := session.Token(); token != "" {
		c.Writer.Header()[services.TokenHeader] = []string{token}
	}
	h.logger.Debug("review page served",
		zap.Bool("has_report", page.ReportForReview != nil),
		zap.Int("pending", page.PendingCount))

	c.JSON(http.StatusOK, page)
}

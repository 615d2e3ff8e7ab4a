package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lari-oliv/olive-beauty/reports"
	"github.com/Lari-oliv/olive-beauty/services"
)

// FeedServer upgrades a request to the admin order feed.
type FeedServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type DashboardController struct {
	service DashboardService
	feed    FeedServer
}

func NewDashboardController(service DashboardService, feed FeedServer) *DashboardController {
	return &DashboardController{service: service, feed: feed}
}

func (dc *DashboardController) Stats(c *gin.Context) {
	stats, serr := dc.service.Stats(c.Request.Context())
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, stats)
}

// TopProducts handles GET /api/dashboard/top-products?limit&by.
func (dc *DashboardController) TopProducts(c *gin.Context) {
	by, serr := services.ParseTopProductMetric(c.Query("by"))
	if serr != nil {
		fail(c, serr)
		return
	}
	top, serr := dc.service.TopProducts(c.Request.Context(), intQuery(c, "limit"), by)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, top)
}

func (dc *DashboardController) RevenueOverTime(c *gin.Context) {
	series, serr := dc.service.RevenueOverTime(c.Request.Context(), intQuery(c, "days"))
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, series)
}

func (dc *DashboardController) OrdersOverTime(c *gin.Context) {
	series, serr := dc.service.OrdersOverTime(c.Request.Context(), intQuery(c, "days"))
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, series)
}

func (dc *DashboardController) OrdersByStatus(c *gin.Context) {
	counts, serr := dc.service.OrdersByStatus(c.Request.Context(), intQuery(c, "days"))
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, counts)
}

func (dc *DashboardController) SalesByCategory(c *gin.Context) {
	sales, serr := dc.service.SalesByCategory(c.Request.Context(), intQuery(c, "days"))
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, sales)
}

// Overview returns every widget in one response computed against one clock
// reading.
func (dc *DashboardController) Overview(c *gin.Context) {
	by, serr := services.ParseTopProductMetric(c.Query("by"))
	if serr != nil {
		fail(c, serr)
		return
	}
	overview, serr := dc.service.Overview(c.Request.Context(), intQuery(c, "days"), intQuery(c, "limit"), by)
	if serr != nil {
		fail(c, serr)
		return
	}
	success(c, http.StatusOK, overview)
}

// Export streams the orders workbook as a download.
func (dc *DashboardController) Export(c *gin.Context) {
	body, filename, serr := dc.service.ExportOrders(c.Request.Context(), intQuery(c, "days"))
	if serr != nil {
		fail(c, serr)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, reports.ContentType, body)
}

func (dc *DashboardController) Feed(c *gin.Context) {
	dc.feed.ServeWS(c.Writer, c.Request)
}

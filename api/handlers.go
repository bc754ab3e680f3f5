package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/semantic/analyzer"
	"github.com/seo-optimizer/semantic/export"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/middleware"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/store"
)

type handlers struct {
	analyzer Analyzer
	store    store.AnalysisStore
	stats    *logging.Statistics
	logger   logging.Logger
}

type analyzeRequest struct {
	Input string `json:"input" binding:"required"`
	Mode  string `json:"mode"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain an input field"})
		return
	}
	mode := models.Mode(req.Mode)
	if mode == "" {
		mode = models.ModeURL
	}
	c.Set(middleware.KeyAnalysisInput, req.Input)
	c.Set(middleware.KeyAnalysisMode, string(mode))

	h.logger.Info("analyze request",
		logging.String("client", c.ClientIP()),
		logging.String("mode", string(mode)))

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Input, mode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	saved, err := h.store.Save(c.Request.Context(), analysis)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) list(c *gin.Context) {
	all, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *handlers) get(c *gin.Context) {
	a, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := time.Now()
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(format, now)+`"`)
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, a, format, sectionsFromQuery(c), now); err != nil {
		h.logger.Error("export failed", logging.String("id", a.ID), logging.Err(err))
	}
}

// sectionsFromQuery reads ?sections=topics,entities; absent means all
func sectionsFromQuery(c *gin.Context) export.Sections {
	names := c.QueryArray("sections")
	if len(names) == 0 {
		return export.AllSections()
	}
	var s export.Sections
	for _, n := range names {
		for _, part := range splitComma(n) {
			switch part {
			case "topics":
				s.Topics = true
			case "entities":
				s.Entities = true
			case "seoMetrics", "seo":
				s.SEOMetrics = true
			case "urlSuggestions", "urls":
				s.URLSuggestions = true
			}
		}
	}
	return s
}

func (h *handlers) statistics(c *gin.Context) {
	out := h.stats.GetStatistics()
	out["crawlCache"] = h.analyzer.GetCacheStats()
	c.JSON(http.StatusOK, out)
}

// respondError maps the error taxonomy onto HTTP statuses
func (h *handlers) respondError(c *gin.Context, err error) {
	var (
		ve *analyzer.ValidationError
		ce *analyzer.CrawlError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": analyzer.UserMessage(err)})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadGateway, gin.H{"error": analyzer.UserMessage(err), "reason": ce.Reason})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
	default:
		h.logger.Error("request failed", logging.String("path", c.FullPath()), logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": analyzer.UserMessage(err)})
	}
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/pipeline"
	"github.com/deen-commerce/orderlink/internal/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload server for order conversion",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/process", func(w http.ResponseWriter, req *http.Request) {
		// Conversions are memory-heavy; shed load instead of queueing.
		if !limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		handleProcess(w, req)
	})

	return r
}

func handleProcess(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(cfg.Server.MaxUploadMB << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}

	file, _, err := req.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable upload"})
		return
	}

	table, err := sheet.ReadBytes(data, sheet.ReadOptions{SheetName: req.FormValue("sheet")})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cm := model.DetectColumnMap(table.Headers)
	res, err := newPipeline(cm).Run(req.Context(), table)
	if err != nil {
		var cfgErr *pipeline.ConfigurationError
		if errors.As(err, &cfgErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": cfgErr.Error()})
			return
		}
		zap.L().Error("serve: conversion failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "conversion failed"})
		return
	}

	for _, ge := range res.GroupErrors {
		zap.L().Warn("serve: group excluded", zap.String("phone", ge.Phone), zap.Error(ge))
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="whatsapp_orders.xlsx"`)
	if err := sheet.WriteTo(res.Output, w); err != nil {
		zap.L().Error("serve: write response", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

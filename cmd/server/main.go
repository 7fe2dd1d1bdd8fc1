// Command server exposes the evaluation pipeline over HTTP. POST newline
// separated system and reference text to /score and get the BLEU result as
// JSON. Intended for batch-scoring setups where spawning a process per
// evaluation is too slow.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	mteval "github.com/baditaflorin/go_mt_eval"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
)

// Request represents a scoring request. System and Reference hold one
// sentence per line.
type Request struct {
	System    string  `json:"system"`
	Reference string  `json:"reference"`
	Language  string  `json:"language,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// Response carries the scoring result.
type Response struct {
	Score          float64   `json:"score"`
	Passed         bool      `json:"passed"`
	Precisions     []float64 `json:"precisions"`
	BrevityPenalty float64   `json:"brevity_penalty"`
	HypLength      int       `json:"hyp_length"`
	RefLength      int       `json:"ref_length"`
	Ratio          float64   `json:"ratio"`
	Pretty         string    `json:"pretty"`
	DurationMs     float64   `json:"duration_ms"`
}

var logger l.Logger

func main() {
	port := flag.Int("port", DefaultPort, "port to listen on")
	flag.Parse()

	var err error
	logger, err = l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: true,
		AsyncWrite: true,
		BufferSize: 1024 * 1024,
		AddSource:  false,
		Metrics:    true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Close()

	server := &fasthttp.Server{
		Handler:            requestHandler,
		ReadTimeout:        DefaultReadTimeout,
		WriteTimeout:       DefaultWriteTimeout,
		MaxRequestBodySize: DefaultMaxRequestSize,
		Name:               "mteval-server",
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("Shutting down server")
		if err := server.Shutdown(); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("Starting scoring server", "addr", addr)
	if err := server.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/score":
		handleScore(ctx)
	case "/health":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(`{"status":"ok"}`)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func handleScore(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.System == "" || req.Reference == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "system and reference are required")
		return
	}

	opts := []mteval.Option{
		mteval.WithLogger(logger),
		mteval.WithThreshold(req.Threshold),
	}
	if req.Language != "" {
		opts = append(opts, mteval.WithLanguage(req.Language))
	}

	evaluator, err := mteval.New(opts...)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	start := time.Now()
	result, err := evaluator.ScoreText(context.Background(), req.System, req.Reference)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if strings.Contains(err.Error(), "sentence count mismatch") {
			status = fasthttp.StatusBadRequest
		}
		writeError(ctx, status, err.Error())
		return
	}
	duration := time.Since(start)

	resp := Response{
		Score:          result.Score,
		Passed:         result.Passed,
		Precisions:     result.Precisions,
		BrevityPenalty: result.BrevityPenalty,
		HypLength:      result.HypLength,
		RefLength:      result.RefLength,
		Ratio:          result.Ratio,
		Pretty:         result.String(),
		DurationMs:     float64(duration.Microseconds()) / 1000,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(map[string]string{"error": msg})
	ctx.SetBody(body)
}
